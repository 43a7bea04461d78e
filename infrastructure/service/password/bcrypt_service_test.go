package password

import (
	"strings"
	"testing"
)

func TestBcryptPasswordService(t *testing.T) {
	service := NewBcryptPasswordService(4) // low cost keeps the test fast

	t.Run("HashAndCompare", func(t *testing.T) {
		hash, err := service.HashPassword("password123")
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		if hash == "password123" {
			t.Error("hash should not equal the password")
		}
		if err := service.ComparePassword(hash, "password123"); err != nil {
			t.Errorf("compare should succeed: %v", err)
		}
		if err := service.ComparePassword(hash, "wrong"); err == nil {
			t.Error("compare should fail for the wrong password")
		}
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		if _, err := service.HashPassword(""); err == nil {
			t.Error("empty password should be rejected")
		}
		if err := service.ComparePassword("", "x"); err == nil {
			t.Error("empty hash should be rejected")
		}
	})

	t.Run("GeneratePassword", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			p, err := service.GeneratePassword()
			if err != nil {
				t.Fatalf("failed to generate password: %v", err)
			}
			if len(p) != generatedPasswordLength {
				t.Errorf("expected %d chars, got %d", generatedPasswordLength, len(p))
			}
			for _, r := range p {
				if !strings.ContainsRune(passwordAlphabet, r) {
					t.Errorf("character %q outside the alphabet", r)
				}
			}
			seen[p] = true
		}
		if len(seen) < 2 {
			t.Error("generated passwords should differ")
		}
	})

	t.Run("GeneratedPasswordHashes", func(t *testing.T) {
		p, err := service.GeneratePassword()
		if err != nil {
			t.Fatalf("failed to generate password: %v", err)
		}
		hash, err := service.HashPassword(p)
		if err != nil {
			t.Fatalf("failed to hash generated password: %v", err)
		}
		if err := service.ComparePassword(hash, p); err != nil {
			t.Errorf("generated password should verify: %v", err)
		}
	})
}
