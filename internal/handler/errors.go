package handler

import (
	"errors"
	"net/http"

	"github.com/komiharuu/Trello-Project/internal/service"
)

// statusForServiceError maps domain errors onto HTTP status codes.
// NotFound/Conflict style errors are surfaced verbatim; anything else
// is an internal failure.
func statusForServiceError(err error) int {
	switch {
	case errors.Is(err, service.ErrBoardNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvitationNotFound),
		errors.Is(err, service.ErrListNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrAlreadyAccepted),
		errors.Is(err, service.ErrTitleTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotBoardOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
