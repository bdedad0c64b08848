package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"noteapp/internal/contract"
	"noteapp/internal/domain/entity"
	"noteapp/internal/utils"
	"noteapp/internal/utils/apierror"
)

type ShareService interface {
	ShareNote(actor *entity.User, noteID int64, req *contract.ShareNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	RevokeAccess(actor *entity.User, noteID, targetUserID int64) (*contract.NoteResponse, apierror.ErrorResponse)
	GetSharedNotes(viewer *entity.User) ([]*contract.NoteResponse, apierror.ErrorResponse)
}

type DefaultShareRoute struct {
	ShareService ShareService
}

func NewShareDefault(shareService ShareService) *DefaultShareRoute {
	return &DefaultShareRoute{ShareService: shareService}
}

func (s *DefaultShareRoute) ShareNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := parseNoteID(c)
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.ShareNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	note, apierr := s.ShareService.ShareNote(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (s *DefaultShareRoute) RevokeAccess(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := parseNoteID(c)
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	targetID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("userId", "int64"))
	}

	note, apierr := s.ShareService.RevokeAccess(user, id, targetID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (s *DefaultShareRoute) GetSharedNotes(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	notes, apierr := s.ShareService.GetSharedNotes(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"notes": notes}
	return c.JSON(http.StatusOK, &resp)
}
