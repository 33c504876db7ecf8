package model

import (
	"time"

	"github.com/google/uuid"
)

// Invitation is an offer of board membership identified by an opaque
// token. Rows are never deleted; accepted and declined invitations
// remain as history.
type Invitation struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index"`
	MemberEmail string    `gorm:"not null;index"`
	Status      string    `gorm:"not null;default:'pending';check:status IN ('pending', 'accepted', 'declined')"`
	Token       string    `gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Board Board `gorm:"foreignKey:BoardID"`
}

// Invitation lifecycle: pending is the initial state, accepted and
// declined are terminal.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)
