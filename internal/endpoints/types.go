// Package endpoints manages webhook endpoint records: registration,
// authentication, and the sliding-expiration store that holds them.
package endpoints

// Endpoint is the record kept per webhook code. The stored value is the
// JSON-encoded URL and password hash; the code itself is the store key and
// is filled in when a record is loaded.
type Endpoint struct {
	Code         string `json:"-"`
	URL          string `json:"url"`
	PasswordHash string `json:"passwordHash"`
}

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	Password string `json:"password"`
}

// AuthenticateInput is the body of an authentication request.
type AuthenticateInput struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}
