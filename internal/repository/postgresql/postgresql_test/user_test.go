package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/employee"
	"github.com/novatech-uz/company-backend-go/internal/domain/user"
	"github.com/novatech-uz/company-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSetup *TestDatabaseSetup

func TestMain(m *testing.M) {
	var err error
	testSetup, err = NewTestDatabase()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := m.Run()
	if testSetup != nil {
		testSetup.Close()
	}
	os.Exit(code)
}

// setupTestData skips the test without a database and truncates everything otherwise.
func setupTestData(t *testing.T) {
	t.Helper()
	if testSetup == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, testSetup.TruncateAllTables(context.Background()))
	t.Cleanup(func() {
		_ = testSetup.TruncateAllTables(context.Background())
	})
}

func createTestUser(t *testing.T, ctx context.Context, email string, role user.Role) user.User {
	t.Helper()
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	created, err := postgresql.NewUserRepository(testSetup.DB).Create(ctx, user.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		IsActive:     true,
	})
	require.NoError(t, err)
	return created
}

func createTestEmployee(t *testing.T, ctx context.Context, name string) employee.Employee {
	t.Helper()
	created, err := postgresql.NewEmployeeRepository(testSetup.DB).Create(ctx, employee.Employee{
		Name:       name,
		Position:   "Backend Developer",
		AvatarURL:  "https://cdn.example.com/avatar.png",
		Department: employee.DepartmentBackend,
		JoinDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
	})
	require.NoError(t, err)
	return created
}

// ===== USER REPOSITORY TESTS =====

func TestUserRepository_Create_Success(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()

	created := createTestUser(t, ctx, "newuser@example.com", user.RoleUser)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "newuser@example.com", created.Email)
	assert.Equal(t, user.RoleUser, created.Role)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(testSetup.DB)

	existing := createTestUser(t, ctx, "taken@example.com", user.RoleUser)

	_, err := userRepo.Create(ctx, user.User{
		Name:         "Other",
		Email:        existing.Email,
		PasswordHash: existing.PasswordHash,
		Role:         user.RoleUser,
		IsActive:     true,
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUserRepository_GetByEmail_Success(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(testSetup.DB)

	testUser := createTestUser(t, ctx, "test@example.com", user.RoleAdmin)

	retrieved, err := userRepo.GetByEmail(ctx, "TEST@example.com")

	assert.NoError(t, err)
	assert.Equal(t, testUser.ID, retrieved.ID)
	assert.Equal(t, user.RoleAdmin, retrieved.Role)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	setupTestData(t)
	userRepo := postgresql.NewUserRepository(testSetup.DB)

	_, err := userRepo.GetByEmail(context.Background(), "notfound@example.com")

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_UpdatePassword_UnknownUser(t *testing.T) {
	setupTestData(t)
	userRepo := postgresql.NewUserRepository(testSetup.DB)

	err := userRepo.UpdatePassword(context.Background(), "00000000-0000-0000-0000-000000000000", "hash")

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
