package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/novatech-uz/company-backend-go/internal/domain/auth"
	"github.com/novatech-uz/company-backend-go/internal/domain/user"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/middleware"
	"github.com/novatech-uz/company-backend-go/internal/handler/http/response"
	"github.com/novatech-uz/company-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	UpdateDetails(w http.ResponseWriter, r *http.Request)
	UpdatePassword(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

func sessionFrom(r *http.Request) auth.SessionTrackingRequest {
	return auth.SessionTrackingRequest{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}
}

func (a *AuthHandlerImpl) setTokenCookies(w http.ResponseWriter, tokens auth.TokenResponse) {
	http.SetCookie(w, a.jwtService.AccessTokenCookie(tokens.AccessToken, tokens.AccessTokenExpiresIn))
	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
}

// Register implements AuthHandler.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq auth.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.Register(r.Context(), registerReq, sessionFrom(r))
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	a.setTokenCookies(w, tokenResponse)
	slog.Info("User registered successfully", "user_id", tokenResponse.User.ID)
	response.Created(w, "User registered successfully", tokenResponse)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq, sessionFrom(r))
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	a.setTokenCookies(w, tokenResponse)
	slog.Info("User logged in successfully", "user_id", tokenResponse.User.ID)
	response.SuccessWithMessage(w, "User logged in successfully", tokenResponse)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(jwt.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	tokenResponse, err := a.authService.RefreshToken(r.Context(), cookie.Value)
	if err != nil {
		slog.Error("RefreshToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	a.setTokenCookies(w, tokenResponse)
	response.SuccessWithMessage(w, "Token refreshed successfully", tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie(jwt.RefreshTokenCookieName); err == nil {
		refreshToken = cookie.Value
	}

	if err := a.authService.Logout(r.Context(), refreshToken); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	for _, c := range a.jwtService.ClearCookies() {
		http.SetCookie(w, c)
	}
	response.SuccessWithMessage(w, "User logged out successfully", nil)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	current, err := a.authService.Me(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		slog.Error("Me service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, current)
}

// UpdateDetails implements AuthHandler.
func (a *AuthHandlerImpl) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateDetailsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateDetails decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := a.authService.UpdateDetails(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		slog.Error("UpdateDetails service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User details updated successfully", updated)
}

// UpdatePassword implements AuthHandler.
func (a *AuthHandlerImpl) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req auth.UpdatePasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.UpdatePassword(r.Context(), middleware.UserID(r.Context()), req, sessionFrom(r))
	if err != nil {
		slog.Error("UpdatePassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	a.setTokenCookies(w, tokenResponse)
	response.SuccessWithMessage(w, "Password updated successfully", tokenResponse)
}
