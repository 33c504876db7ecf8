package model

import (
	"time"

	"github.com/google/uuid"
)

// Member is a confirmed association between a user and a board.
// The composite unique index is the authoritative guard against
// duplicate membership under concurrent accepts.
type Member struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_members_board_user"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_members_board_user"`
	Role         string     `gorm:"not null;check:role IN ('owner', 'member')"`
	InvitationID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`

	Board Board `gorm:"foreignKey:BoardID"`
	User  User  `gorm:"foreignKey:UserID"`
}

// Board member roles
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)
