package middleware

import (
	"errors"
	"strings"

	"freelink_backend/internal/auth"
	"freelink_backend/internal/logger"
	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"
	"freelink_backend/pkg/apperrors"
	"freelink_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware checks the bearer token and that its user still exists and is active.
func AuthMiddleware(tokens *auth.TokenManager, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(errors.New("db missing from context")))
			return
		}

		user, err := userRepo.FindByID(db.WithContext(c.Request.Context()), claims.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				apperrors.HandleError(c, apperrors.ErrInvalidToken)
				return
			}
			apperrors.HandleError(c, apperrors.InternalError(err))
			return
		}
		if !user.Status.CanLogin() {
			apperrors.HandleError(c, apperrors.ErrUserInactive)
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Set(contextkeys.UserIDKey, user.ID)
		c.Set(contextkeys.RoleKey, user.Role)
		c.Next()
	}
}

// RequireRoles lets the request through only for the listed roles
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(contextkeys.RoleKey)
		if !exists {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no role"))
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: invalid role type"))
				return
			}
			role = models.UserRole(roleStr)
		}

		if !roleSet[role] {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: insufficient role"))
			return
		}

		c.Next()
	}
}

// GetUserID returns the authenticated user id, or "" outside AuthMiddleware
func GetUserID(c *gin.Context) string {
	id, _ := c.Get(contextkeys.UserIDKey)
	userID, _ := id.(string)
	return userID
}
