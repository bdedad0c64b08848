package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"noteapp/internal/contract"
	"noteapp/internal/domain/entity"
	"noteapp/internal/utils"
	"noteapp/internal/utils/apierror"
)

type TagService interface {
	GetTags(actor *entity.User) ([]*contract.TagResponse, apierror.ErrorResponse)
}

type DefaultTagRoute struct {
	TagService TagService
}

func NewTagDefault(tagService TagService) *DefaultTagRoute {
	return &DefaultTagRoute{TagService: tagService}
}

func (t *DefaultTagRoute) GetTags(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	tags, apierr := t.TagService.GetTags(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"tags": tags}
	return c.JSON(http.StatusOK, &resp)
}
