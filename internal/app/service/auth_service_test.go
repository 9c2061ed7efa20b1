package service

import (
	"testing"
	"time"

	"github.com/shajghor/shajghor-backend/config"
	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/internal/app/repository"
	"github.com/shajghor/shajghor-backend/internal/db"
	"github.com/shajghor/shajghor-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
		Admin: config.AdminConfig{
			BootstrapEmail:    "admin@shajghor.com",
			BootstrapPassword: "admin-password",
		},
	}

	adminRepo := repository.NewAdminUserRepository(testDB)
	return NewAuthService(adminRepo, cfg), testDB
}

func createAdmin(t *testing.T, testDB *gorm.DB, email, password string) *model.AdminUser {
	hash, err := util.HashPassword(password)
	require.NoError(t, err)

	admin := &model.AdminUser{
		Email:        email,
		PasswordHash: hash,
		Name:         "Store Admin",
		Role:         model.RoleAdmin,
	}
	require.NoError(t, testDB.Create(admin).Error)
	return admin
}

func TestAuthService_Login_Success(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)
	createAdmin(t, testDB, "admin@shajghor.com", "correct-password")

	admin, tokens, err := authService.Login("admin@shajghor.com", "correct-password")
	require.NoError(t, err)

	assert.Equal(t, "admin@shajghor.com", admin.Email)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthService_Login_EmailIsCaseInsensitive(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)
	createAdmin(t, testDB, "admin@shajghor.com", "correct-password")

	admin, _, err := authService.Login("  Admin@Shajghor.com ", "correct-password")
	require.NoError(t, err)
	assert.Equal(t, "admin@shajghor.com", admin.Email)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)
	createAdmin(t, testDB, "admin@shajghor.com", "correct-password")

	_, _, err := authService.Login("admin@shajghor.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotEmpty(t, err.Error())
}

func TestAuthService_Login_UnknownIdentityAlwaysFails(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)
	createAdmin(t, testDB, "admin@shajghor.com", "correct-password")

	// An identity without an admin row never authenticates, even with
	// the right password for the real account.
	for _, password := range []string{"correct-password", "anything", ""} {
		_, _, err := authService.Login("visitor@example.com", password)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.NotEmpty(t, err.Error())
	}
}

func TestAuthService_GetAdminByID(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)
	created := createAdmin(t, testDB, "admin@shajghor.com", "correct-password")

	admin, err := authService.GetAdminByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, admin.Email)

	_, err = authService.GetAdminByID(9999)
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

func TestAuthService_EnsureBootstrapAdmin(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	require.NoError(t, authService.EnsureBootstrapAdmin())

	var count int64
	testDB.Model(&model.AdminUser{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// Idempotent: a second run does not duplicate the row.
	require.NoError(t, authService.EnsureBootstrapAdmin())
	testDB.Model(&model.AdminUser{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// The seeded credentials work.
	_, tokens, err := authService.Login("admin@shajghor.com", "admin-password")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
}
