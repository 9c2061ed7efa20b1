package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/internal/app/repository"
	"github.com/shajghor/shajghor-backend/internal/db"
	"github.com/shajghor/shajghor-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func setupAuthMiddlewareTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	adminRepo := repository.NewAdminUserRepository(testDB)
	authMiddleware := NewAuthMiddleware(testSecret, adminRepo)

	engine := gin.New()
	engine.GET("/admin/ping",
		authMiddleware.Authenticate(),
		authMiddleware.RequireAdmin(),
		func(c *gin.Context) {
			adminID, _ := GetAdminID(c)
			c.JSON(http.StatusOK, gin.H{"admin_id": adminID})
		},
	)

	return engine, testDB
}

func adminToken(t *testing.T, adminID uint, email string) string {
	tokens, err := util.GenerateTokenPair(adminID, email, "admin", testSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)
	return tokens.AccessToken
}

func doRequest(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	engine, _ := setupAuthMiddlewareTest(t)

	w := doRequest(engine, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	engine, _ := setupAuthMiddlewareTest(t)

	for _, header := range []string{"Bearer", "Token abc", "abc"} {
		w := doRequest(engine, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	engine, _ := setupAuthMiddlewareTest(t)

	w := doRequest(engine, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	engine, _ := setupAuthMiddlewareTest(t)

	tokens, err := util.GenerateTokenPair(1, "admin@shajghor.com", "admin", testSecret, -time.Minute, time.Hour)
	require.NoError(t, err)

	w := doRequest(engine, "Bearer "+tokens.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_TokenWithoutAdminRow(t *testing.T) {
	engine, _ := setupAuthMiddlewareTest(t)

	// A structurally valid token whose identity has no admin_users row
	// is rejected. Removing the row revokes access immediately.
	w := doRequest(engine, "Bearer "+adminToken(t, 42, "ghost@example.com"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddleware_ValidAdmin(t *testing.T) {
	engine, testDB := setupAuthMiddlewareTest(t)

	admin := &model.AdminUser{
		Email:        "admin@shajghor.com",
		PasswordHash: "hash",
		Name:         "Store Admin",
		Role:         model.RoleAdmin,
	}
	require.NoError(t, testDB.Create(admin).Error)

	w := doRequest(engine, "Bearer "+adminToken(t, admin.ID, admin.Email))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_RevokedAdmin(t *testing.T) {
	engine, testDB := setupAuthMiddlewareTest(t)

	admin := &model.AdminUser{
		Email:        "admin@shajghor.com",
		PasswordHash: "hash",
		Name:         "Store Admin",
		Role:         model.RoleAdmin,
	}
	require.NoError(t, testDB.Create(admin).Error)
	token := adminToken(t, admin.ID, admin.Email)

	w := doRequest(engine, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	// Delete the row; the same token stops working on the next request.
	require.NoError(t, testDB.Delete(admin).Error)

	w = doRequest(engine, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
