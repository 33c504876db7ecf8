package service

import "errors"

// Domain errors surfaced to the handler layer. NotFound and Conflict
// style errors are never retried internally; handlers translate them
// into status codes.
var (
	ErrBoardNotFound      = errors.New("board not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvitationNotFound = errors.New("invalid invitation token")
	ErrListNotFound       = errors.New("list not found")

	ErrAlreadyMember   = errors.New("user is already a member of this board")
	ErrAlreadyAccepted = errors.New("invitation has already been accepted")
	ErrTitleTaken      = errors.New("a board with this title already exists")

	ErrNotBoardOwner = errors.New("only the board owner can perform this action")
)
