package outbound

import (
	"errors"

	"github.com/clubhub/clubhub/domain/entity"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// TokenClaims is the identity embedded in a session token. Tokens are
// ephemeral and never persisted; validity is signature + expiry plus the
// caller re-checking that the principal still exists.
type TokenClaims struct {
	ID       string          `json:"id"`
	Role     string          `json:"role"`
	UserType entity.UserType `json:"userType"`
	Email    string          `json:"email"`
}

type TokenService interface {
	Issue(claims TokenClaims) (string, error)
	// Verify returns ErrTokenExpired for well-formed but stale tokens and
	// ErrTokenInvalid for everything else that fails.
	Verify(token string) (*TokenClaims, error)
}
