package auth

import "testing"

func TestHashPassword(t *testing.T) {
	password := "secret123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "" {
		t.Error("HashPassword returned empty hash")
	}

	if hash == password {
		t.Error("HashPassword returned unhashed password")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	hash, err := HashPassword("")
	if err != nil {
		t.Fatalf("HashPassword failed for empty password: %v", err)
	}

	if err := VerifyPassword("", hash); err != nil {
		t.Errorf("VerifyPassword failed for empty password: %v", err)
	}

	if err := VerifyPassword("notempty", hash); err == nil {
		t.Error("VerifyPassword should fail for non-empty password against empty-password hash")
	}
}

func TestVerifyPassword(t *testing.T) {
	password := "secret123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if err := VerifyPassword(password, hash); err != nil {
		t.Errorf("VerifyPassword failed for correct password: %v", err)
	}

	if err := VerifyPassword("wrongpass", hash); err == nil {
		t.Error("VerifyPassword should fail for wrong password")
	}
}
