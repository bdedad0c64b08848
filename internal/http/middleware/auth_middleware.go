package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"noteapp/internal/domain/entity"
	"noteapp/internal/utils"
	"noteapp/internal/utils/apierror"
)

type UserRepository interface {
	FindBySub(sub string) (*entity.User, error)
}

type AuthMiddlewareConfig struct {
	UserRepo UserRepository
}

// NewAuthMiddleware verifies the bearer token against the identity
// provider's published keys and resolves the local user row for the
// request. Verification is local and side-effect free, so running it on
// every request is fine.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := utils.ParseTokenDataCtx(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			user, err := cfg.UserRepo.FindBySub(tokenData.Sub)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if user == nil {
				// User deleted in DB but still has a valid token???
				return c.JSON(http.StatusUnauthorized, apierror.IDPUserNotFoundError)
			}

			c.Set("user", user)
			c.Set("token", tokenData)
			return next(c)
		}
	}
}
