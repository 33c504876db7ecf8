package repository

import (
	"context"
	"errors"

	"github.com/komiharuu/Trello-Project/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepository struct {
	db *gorm.DB
}

type InvitationRepositoryInterface interface {
	Create(ctx context.Context, invitation *model.Invitation) error
	Save(ctx context.Context, invitation *model.Invitation) error
	FindByToken(ctx context.Context, token string) (*model.Invitation, error)
	FindLatestByBoardAndEmail(ctx context.Context, boardID uuid.UUID, email string) (*model.Invitation, error)
	TokenExists(ctx context.Context, token string) (bool, error)
}

var _ InvitationRepositoryInterface = (*InvitationRepository)(nil)

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) Create(ctx context.Context, invitation *model.Invitation) error {
	err := r.db.WithContext(ctx).Create(invitation).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateToken
	}
	return err
}

func (r *InvitationRepository) Save(ctx context.Context, invitation *model.Invitation) error {
	return r.db.WithContext(ctx).Save(invitation).Error
}

// FindByToken resolves an invitation by its opaque token, the only
// external handle for accept/decline.
func (r *InvitationRepository) FindByToken(ctx context.Context, token string) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindLatestByBoardAndEmail returns the most recent invitation for the
// (board, email) pair regardless of status. The caller branches on the
// status: pending rows are reused, accepted rows block a re-invite, and
// declined rows start a new invitation cycle.
func (r *InvitationRepository) FindLatestByBoardAndEmail(ctx context.Context, boardID uuid.UUID, email string) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND member_email = ?", boardID, email).
		Order("created_at DESC").
		First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// TokenExists checks whether any invitation, in any status, already
// holds the candidate token.
func (r *InvitationRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Invitation{}).Where("token = ?", token).Count(&count).Error
	return count > 0, err
}
