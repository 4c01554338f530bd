package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freelink_backend/internal/auth"
	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"
	"freelink_backend/internal/testutil"
	"freelink_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB, *auth.TokenManager) {
	t.Helper()
	db := testutil.NewTestDB(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	r := gin.New()
	r.Use(RequestIDMiddleware(), DBMiddleware(db))
	authenticated := r.Group("", AuthMiddleware(tokens, repositories.NewUserRepository()))
	authenticated.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})
	authenticated.GET("/company-only", RequireRoles(models.UserRoleCompany), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, db, tokens
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, db, tokens := newAuthRouter(t)
	user := testutil.CreateUser(t, db, models.UserRoleFreelancer)
	token, err := tokens.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err)

	w := doGet(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = doGet(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	w = doGet(r, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ghost, err := tokens.GenerateToken("00000000-0000-0000-0000-000000000000", "freelancer")
	require.NoError(t, err)
	w = doGet(r, "/me", ghost)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", models.UserStatusBlocked).Error)
	w = doGet(r, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
}

func TestRequireRoles(t *testing.T) {
	r, db, tokens := newAuthRouter(t)
	company := testutil.CreateUser(t, db, models.UserRoleCompany)
	freelancer := testutil.CreateUser(t, db, models.UserRoleFreelancer)

	companyToken, err := tokens.GenerateToken(company.ID, string(company.Role))
	require.NoError(t, err)
	freelancerToken, err := tokens.GenerateToken(freelancer.ID, string(freelancer.Role))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, doGet(r, "/company-only", companyToken).Code)
	assert.Equal(t, http.StatusForbidden, doGet(r, "/company-only", freelancerToken).Code)
}

func TestRequestIDMiddleware_KeepsClientID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestDBMiddleware_SetsPool(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := gin.New()
	r.Use(DBMiddleware(db))
	r.GET("/db", func(c *gin.Context) {
		got, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok || got != db {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, doGet(r, "/db", "").Code)
}
