package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/novatech-uz/company-backend-go/internal/domain/auth"
	"github.com/novatech-uz/company-backend-go/internal/domain/user"
	"github.com/novatech-uz/company-backend-go/internal/pkg/clock"
	"github.com/novatech-uz/company-backend-go/internal/pkg/database"
	"github.com/novatech-uz/company-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx database.Transactor
	user.UserRepository
	auth.RefreshTokenRepository
	jwt.Service
	clock clock.Clock
}

func NewAuthService(
	tx database.Transactor,
	userRepository user.UserRepository,
	refreshTokenRepository auth.RefreshTokenRepository,
	jwtService jwt.Service,
	clk clock.Clock,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:                     tx,
		UserRepository:         userRepository,
		RefreshTokenRepository: refreshTokenRepository,
		Service:                jwtService,
		clock:                  clk,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// issueTokens signs a token pair for u and stores the refresh token hash.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var (
		tokenResponse auth.TokenResponse
		err           error
	)

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	err = a.RefreshTokenRepository.CreateRefreshToken(ctx, u.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, session)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}

	tokenResponse.User = u.ToResponse()
	return tokenResponse, nil
}

// Register implements auth.AuthService. Self-registered accounts always get the user role.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		exists, err := a.UserRepository.ExistsByEmail(txCtx, req.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return user.ErrUserEmailExists
		}

		created, err := a.UserRepository.Create(txCtx, user.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hashed,
			Role:         user.RoleUser,
			Phone:        req.Phone,
			IsActive:     true,
		})
		if err != nil {
			return err
		}

		tokenResponse, err = a.issueTokens(txCtx, created, session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("User registered", "user_id", tokenResponse.User.ID)
	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		now := a.clock.Now()
		if err := a.UserRepository.UpdateLastLogin(txCtx, userData.ID, now); err != nil {
			return fmt.Errorf("failed to update last login: %w", err)
		}
		userData.LastLogin = &now

		tokenResponse, err = a.issueTokens(txCtx, userData, session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService. The presented refresh token is
// revoked and replaced.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if refreshToken == "" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userID, err := a.Service.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		revoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(txCtx, refreshToken)
		if err != nil {
			return fmt.Errorf("failed to check refresh token: %w", err)
		}
		if revoked {
			return auth.ErrRefreshTokenRevoked
		}

		userData, err := a.UserRepository.GetByID(txCtx, userID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return auth.ErrInvalidToken
			}
			return err
		}
		if !userData.IsActive {
			return user.ErrUserInactive
		}

		if err := a.RefreshTokenRepository.RevokeRefreshToken(txCtx, refreshToken); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		tokenResponse, err = a.issueTokens(txCtx, userData, auth.SessionTrackingRequest{})
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokenResponse, nil
}

// Logout implements auth.AuthService. A missing token is not an error.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := a.RefreshTokenRepository.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, userID string) (user.UserResponse, error) {
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return userData.ToResponse(), nil
}

// UpdateDetails implements auth.AuthService.
func (a *AuthServiceImpl) UpdateDetails(ctx context.Context, userID string, req user.UpdateDetailsRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	updated, err := a.UserRepository.UpdateDetails(ctx, userID, req)
	if err != nil {
		return user.UserResponse{}, err
	}
	return updated.ToResponse(), nil
}

// UpdatePassword implements auth.AuthService. Every session of the user is
// revoked and a fresh token pair is issued.
func (a *AuthServiceImpl) UpdatePassword(ctx context.Context, userID string, req auth.UpdatePasswordRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.TokenResponse{}, auth.ErrWrongPassword
	}

	hashed, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := a.UserRepository.UpdatePassword(txCtx, userID, hashed); err != nil {
			return err
		}
		if err := a.RefreshTokenRepository.RevokeAllForUser(txCtx, userID); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
		tokenResponse, err = a.issueTokens(txCtx, userData, session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokenResponse, nil
}
