package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/auth"
	"github.com/novatech-uz/company-backend-go/internal/domain/user"
	"github.com/novatech-uz/company-backend-go/internal/pkg/clock"
	"github.com/novatech-uz/company-backend-go/internal/pkg/jwt"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]user.User
	seq   int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]user.User{}}
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("00000000-0000-7000-8000-%012d", r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = u
	return u, nil
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *memUserRepo) UpdateDetails(_ context.Context, id string, req user.UpdateDetailsRequest) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	r.users[id] = u
	return u, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = hash
	r.users[id] = u
	return nil
}

func (r *memUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.LastLogin = &at
	r.users[id] = u
	return nil
}

type memTokenRepo struct {
	mu      sync.Mutex
	tokens  map[string]string // token -> user id
	revoked map[string]bool
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]string{}, revoked: map[string]bool{}}
}

func (r *memTokenRepo) CreateRefreshToken(_ context.Context, userID, token string, _ int64, _ auth.SessionTrackingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = userID
	return nil
}

func (r *memTokenRepo) IsRefreshTokenRevoked(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; !ok {
		return true, nil
	}
	return r.revoked[token], nil
}

func (r *memTokenRepo) RevokeRefreshToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = true
	return nil
}

func (r *memTokenRepo) RevokeAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, owner := range r.tokens {
		if owner == userID {
			r.revoked[token] = true
		}
	}
	return nil
}

type authFixture struct {
	svc    auth.AuthService
	users  *memUserRepo
	tokens *memTokenRepo
	now    time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:  newMemUserRepo(),
		tokens: newMemTokenRepo(),
		now:    time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
	}
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp, false)
	f.svc = NewAuthService(passthroughTx{}, f.users, f.tokens, jwtService, clock.Fixed{T: f.now})
	return f
}

func (f *authFixture) seedUser(t *testing.T, email, password string, role user.Role, active bool) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := f.users.Create(context.Background(), user.User{
		Name:         "Seeded",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	})
	require.NoError(t, err)
	return u
}

var testSession = auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.Register(context.Background(), auth.RegisterRequest{
		Name:     "  Dilnoza  ",
		Email:    "Dilnoza@Example.com",
		Password: "secret123",
	}, testSession)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "dilnoza@example.com", resp.User.Email)
	assert.Equal(t, "Dilnoza", resp.User.Name)
	assert.Equal(t, string(user.RoleUser), resp.User.Role)
	assert.True(t, resp.User.IsActive)

	stored, err := f.users.GetByEmail(context.Background(), "dilnoza@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
	assert.Len(t, f.tokens.tokens, 1)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "taken@example.com", "secret123", user.RoleUser, true)

	_, err := f.svc.Register(context.Background(), auth.RegisterRequest{
		Name:     "Other",
		Email:    "taken@example.com",
		Password: "secret123",
	}, testSession)

	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestAuthService_Register_ValidationErrors(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "not-an-email",
		Password: "123",
	}, testSession)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture(t)
	seeded := f.seedUser(t, "login@example.com", "password123", user.RoleAdmin, true)

	resp, err := f.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "LOGIN@example.com",
		Password: "password123",
	}, testSession)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
	assert.Greater(t, resp.RefreshTokenExpiresIn, int64(0))
	assert.Equal(t, "admin", resp.User.Role)

	stored, _ := f.users.GetByID(context.Background(), seeded.ID)
	require.NotNil(t, stored.LastLogin)
	assert.True(t, stored.LastLogin.Equal(f.now))
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "login@example.com", "password123", user.RoleUser, true)

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	}, testSession)

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	}, testSession)

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "inactive@example.com", "password123", user.RoleUser, false)

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "inactive@example.com",
		Password: "password123",
	}, testSession)

	assert.ErrorIs(t, err, user.ErrUserInactive)
	assert.Empty(t, f.tokens.tokens)
}

func TestAuthService_RefreshToken_RotatesToken(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "refresh@example.com", "password123", user.RoleUser, true)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: "refresh@example.com", Password: "password123"}, testSession)
	require.NoError(t, err)

	refreshed, err := f.svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	_, err = f.svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_RefreshToken_Invalid(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.RefreshToken(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = f.svc.RefreshToken(context.Background(), "garbage.token.value")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "logout@example.com", "password123", user.RoleUser, true)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: "logout@example.com", Password: "password123"}, testSession)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, login.RefreshToken))
	assert.NoError(t, f.svc.Logout(ctx, ""))

	_, err = f.svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_Me(t *testing.T) {
	f := newAuthFixture(t)
	seeded := f.seedUser(t, "me@example.com", "password123", user.RoleSuperAdmin, true)

	me, err := f.svc.Me(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", me.Email)
	assert.Equal(t, "super-admin", me.Role)

	_, err = f.svc.Me(context.Background(), "00000000-0000-7000-8000-999999999999")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestAuthService_UpdateDetails(t *testing.T) {
	f := newAuthFixture(t)
	seeded := f.seedUser(t, "details@example.com", "password123", user.RoleUser, true)

	name := "Renamed"
	updated, err := f.svc.UpdateDetails(context.Background(), seeded.ID, user.UpdateDetailsRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	_, err = f.svc.UpdateDetails(context.Background(), seeded.ID, user.UpdateDetailsRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	f := newAuthFixture(t)
	seeded := f.seedUser(t, "pw@example.com", "password123", user.RoleUser, true)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: "pw@example.com", Password: "password123"}, testSession)
	require.NoError(t, err)

	resp, err := f.svc.UpdatePassword(ctx, seeded.ID, auth.UpdatePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "new-password",
	}, testSession)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RefreshToken)

	// Old sessions are gone.
	_, err = f.svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "pw@example.com", Password: "new-password"}, testSession)
	assert.NoError(t, err)
}

func TestAuthService_UpdatePassword_WrongCurrent(t *testing.T) {
	f := newAuthFixture(t)
	seeded := f.seedUser(t, "pw@example.com", "password123", user.RoleUser, true)

	_, err := f.svc.UpdatePassword(context.Background(), seeded.ID, auth.UpdatePasswordRequest{
		CurrentPassword: "not-it",
		NewPassword:     "new-password",
	}, testSession)

	assert.ErrorIs(t, err, auth.ErrWrongPassword)
}
