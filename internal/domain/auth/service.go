package auth

import (
	"context"

	"github.com/novatech-uz/company-backend-go/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, session SessionTrackingRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID string) (user.UserResponse, error)
	UpdateDetails(ctx context.Context, userID string, req user.UpdateDetailsRequest) (user.UserResponse, error)
	UpdatePassword(ctx context.Context, userID string, req UpdatePasswordRequest, session SessionTrackingRequest) (TokenResponse, error)
}
