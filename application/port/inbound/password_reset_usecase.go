package inbound

import "context"

type PasswordResetRequest struct {
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

type PasswordResetConfirm struct {
	Token           string `json:"token"`
	UserType        string `json:"userType"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type PasswordResetUseCase interface {
	// Request always reports success for existing and unknown emails alike
	// so the endpoint cannot be used to probe accounts. A real account gets
	// a one-hour reset link by mail; only the token hash is stored.
	Request(ctx context.Context, req PasswordResetRequest) error
	Reset(ctx context.Context, req PasswordResetConfirm) error
	VerifyToken(ctx context.Context, token, userType string) error
}
