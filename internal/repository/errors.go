package repository

import "errors"

// Common repository errors
var (
	// ErrDuplicateMember is returned when the composite unique index on
	// members(board_id, user_id) rejects an insert
	ErrDuplicateMember = errors.New("member already exists for this board and user")

	// ErrDuplicateToken is returned when the unique index on
	// invitations.token rejects an insert
	ErrDuplicateToken = errors.New("invitation token already exists")
)
