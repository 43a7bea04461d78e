package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/clubhub/clubhub/application/port/outbound"
	"github.com/clubhub/clubhub/domain/entity"
)

func TestJWTService(t *testing.T) {
	service, err := NewJWTService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to create JWT service: %v", err)
	}

	claims := outbound.TokenClaims{
		ID:       "user123",
		Role:     entity.RoleModerateur,
		UserType: entity.UserTypeUser,
		Email:    "sana@esprit.tn",
	}

	t.Run("IssueAndVerify", func(t *testing.T) {
		token, err := service.Issue(claims)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}
		if token == "" {
			t.Fatal("token should not be empty")
		}

		got, err := service.Verify(token)
		if err != nil {
			t.Fatalf("failed to verify token: %v", err)
		}
		if *got != claims {
			t.Errorf("claims round trip mismatch: %+v vs %+v", got, claims)
		}
	})

	t.Run("VerifyGarbage", func(t *testing.T) {
		_, err := service.Verify("not-a-token")
		if !errors.Is(err, outbound.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("VerifyWrongSecret", func(t *testing.T) {
		other, err := NewJWTService("other-secret", time.Hour)
		if err != nil {
			t.Fatalf("failed to create JWT service: %v", err)
		}
		token, err := other.Issue(claims)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}
		if _, err := service.Verify(token); !errors.Is(err, outbound.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid for foreign signature, got %v", err)
		}
	})

	t.Run("VerifyExpired", func(t *testing.T) {
		short, err := NewJWTService("test-secret", time.Nanosecond)
		if err != nil {
			t.Fatalf("failed to create JWT service: %v", err)
		}
		token, err := short.Issue(claims)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}
		time.Sleep(10 * time.Millisecond)

		_, err = short.Verify(token)
		if !errors.Is(err, outbound.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})
}

func TestNewJWTServiceRequiresSecret(t *testing.T) {
	if _, err := NewJWTService("", time.Hour); err == nil {
		t.Error("empty secret should be rejected")
	}
}
