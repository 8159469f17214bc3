package codes

import (
	"errors"
	"testing"
)

func TestGenerate(t *testing.T) {
	for _, length := range []int{1, 8, 16, 64} {
		code, err := Generate(length)
		if err != nil {
			t.Fatalf("Generate(%d) failed: %v", length, err)
		}
		if len(code) != length {
			t.Errorf("Generate(%d) returned %d characters", length, len(code))
		}
		for _, r := range code {
			if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
				t.Errorf("Generate(%d) returned non-hex character %q", length, r)
			}
		}
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	for _, length := range []int{0, -1, 65} {
		if _, err := Generate(length); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("Generate(%d) error = %v, want ErrInvalidLength", length, err)
		}
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		code, err := Generate(16)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate code generated: %s", code)
		}
		seen[code] = struct{}{}
	}
}
