package repository

import (
	"context"
	"errors"

	"github.com/komiharuu/Trello-Project/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	FindByTitle(ctx context.Context, title string) (*model.Board, error)
	List(ctx context.Context) ([]model.Board, error)
	Save(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// GetByID resolves a board by id. Soft-deleted boards are excluded by
// the gorm DeletedAt filter and come back as nil, nil like any other
// missing row.
func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByTitle looks up a live board by exact title. Titles are unique
// among active boards only, so the soft-delete filter matters here.
func (r *BoardRepository) FindByTitle(ctx context.Context, title string) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).Where("title = ?", title).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// List returns all live boards, newest first.
func (r *BoardRepository) List(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) Save(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Board{}, "id = ?", id).Error
}
