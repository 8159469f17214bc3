// Package realtime provides WebSocket-based fan-out of webhook events.
package realtime

import "encoding/json"

// MessageType represents the type of WebSocket message.
type MessageType string

const (
	MessageTypeSubscribe   MessageType = "subscribe"
	MessageTypeUnsubscribe MessageType = "unsubscribe"
	MessageTypePing        MessageType = "ping"

	MessageTypeConnected  MessageType = "connected"
	MessageTypeSubscribed MessageType = "subscribed"
	MessageTypeEvent      MessageType = "event"
	MessageTypeError      MessageType = "error"
	MessageTypePong       MessageType = "pong"
)

// Message is the base WebSocket message structure.
type Message struct {
	ID      string          `json:"id,omitempty"`
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SubscribePayload is the payload for subscribe messages. The topic is a
// webhook code; subscribing to a code that was never registered is allowed
// and simply receives whatever gets published there.
type SubscribePayload struct {
	Topic string `json:"topic"`
}

// UnsubscribePayload is the payload for unsubscribe messages.
type UnsubscribePayload struct {
	Topic string `json:"topic"`
}

// ConnectedPayload is the payload for connected messages.
type ConnectedPayload struct {
	ClientID string `json:"client_id"`
}

// SubscribedPayload acknowledges a subscribe message.
type SubscribedPayload struct {
	Topic string `json:"topic"`
}

// EventPayload carries one relayed webhook call.
type EventPayload struct {
	Topic string `json:"topic"`
	Event any    `json:"event"`
}

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorCode represents an error code for WebSocket errors.
type ErrorCode string

const (
	ErrorCodeInvalidMessage    ErrorCode = "INVALID_MESSAGE"
	ErrorCodeInvalidPayload    ErrorCode = "INVALID_PAYLOAD"
	ErrorCodeSubscriptionLimit ErrorCode = "SUBSCRIPTION_LIMIT_REACHED"
)
