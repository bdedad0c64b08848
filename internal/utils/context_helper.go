package utils

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"noteapp/internal/domain/entity"
	"noteapp/internal/utils/apierror"
)

func GetUserFromContext(c echo.Context) (*entity.User, apierror.ErrorResponse) {
	val := c.Get("user")
	if val == nil {
		log.Warnf("route %s attempted to read nil user from context", c.Request().URL)
		return nil, apierror.UnauthorizedError
	}

	user, ok := val.(*entity.User)
	if !ok {
		log.Warnf("expected user type at 'user' context key, got %v", val)
		return nil, apierror.InternalServerError
	}
	return user, nil
}

func GetTokenFromContext(c echo.Context) (*TokenData, apierror.ErrorResponse) {
	val := c.Get("token")
	if val == nil {
		return nil, apierror.UnauthorizedError
	}

	token, ok := val.(*TokenData)
	if !ok {
		log.Warnf("expected token data at 'token' context key, got %v", val)
		return nil, apierror.InternalServerError
	}
	return token, nil
}
