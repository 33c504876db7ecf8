package repository

import (
	"context"
	"errors"

	"github.com/komiharuu/Trello-Project/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

type MemberRepositoryInterface interface {
	Create(ctx context.Context, member *model.Member) error
	FindByBoardAndUser(ctx context.Context, boardID, userID uuid.UUID) (*model.Member, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Member, error)
}

var _ MemberRepositoryInterface = (*MemberRepository)(nil)

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create inserts a member row. The application-level membership check
// is only a fast path; when two accepts race past it, the unique index
// rejects the loser and the error surfaces as ErrDuplicateMember.
func (r *MemberRepository) Create(ctx context.Context, member *model.Member) error {
	err := r.db.WithContext(ctx).Create(member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateMember
	}
	return err
}

func (r *MemberRepository) FindByBoardAndUser(ctx context.Context, boardID, userID uuid.UUID) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).Where("board_id = ? AND user_id = ?", boardID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("board_id = ?", boardID).
		Find(&members).Error
	return members, err
}
