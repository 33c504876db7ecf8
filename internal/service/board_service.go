package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/komiharuu/Trello-Project/internal/cache"
	"github.com/komiharuu/Trello-Project/internal/model"
	"github.com/komiharuu/Trello-Project/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// boardListCacheKey is the single aggregate key the listing cache
// holds. There are no per-board entries.
const boardListCacheKey = "boards"

type BoardServiceInterface interface {
	CreateBoard(ctx context.Context, input CreateBoardInput, ownerID uuid.UUID) (*model.Board, error)
	GetBoardList(ctx context.Context) ([]BoardSummary, error)
	GetBoardDetail(ctx context.Context, id uuid.UUID) (*model.Board, error)
	UpdateBoard(ctx context.Context, id uuid.UUID, input UpdateBoardInput, actorID uuid.UUID) (*model.Board, error)
	DeleteBoard(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
}

// BoardService owns board CRUD and the read-through cache in front of
// the board listing. Every mutation that changes the listing evicts the
// cache key before the caller sees success.
type BoardService struct {
	boards repository.BoardRepositoryInterface
	users  repository.UserRepositoryInterface
	cache  cache.Cache
}

var _ BoardServiceInterface = (*BoardService)(nil)

func NewBoardService(boards repository.BoardRepositoryInterface, users repository.UserRepositoryInterface, c cache.Cache) *BoardService {
	return &BoardService{boards: boards, users: users, cache: c}
}

type CreateBoardInput struct {
	Title           string
	Description     string
	BackgroundColor string
}

type UpdateBoardInput struct {
	Title           string
	Description     string
	BackgroundColor string
}

// BoardSummary is the listing shape, cached as a JSON snapshot.
type BoardSummary struct {
	BoardID   uuid.UUID `json:"boardId"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateBoard persists a new board. Titles are unique among active
// boards only; a soft-deleted board does not block reuse of its title.
func (s *BoardService) CreateBoard(ctx context.Context, input CreateBoardInput, ownerID uuid.UUID) (*model.Board, error) {
	existing, err := s.boards.FindByTitle(ctx, input.Title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTitleTaken
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	board := &model.Board{
		Title:           input.Title,
		Description:     input.Description,
		BackgroundColor: input.BackgroundColor,
		OwnerID:         owner.ID,
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, err
	}

	// Evict before acknowledging, so no later read can observe the
	// pre-create snapshot.
	if err := s.evictBoardList(ctx); err != nil {
		return nil, err
	}
	return board, nil
}

// GetBoardList serves the listing read-through: cache hit returns the
// stored snapshot, a miss recomputes from storage and populates the
// cache as part of the read.
func (s *BoardService) GetBoardList(ctx context.Context) ([]BoardSummary, error) {
	cached, err := s.cache.Get(ctx, boardListCacheKey)
	if err == nil {
		var summaries []BoardSummary
		if err := json.Unmarshal(cached, &summaries); err == nil {
			return summaries, nil
		}
		// Unreadable snapshot: fall through and rebuild from storage.
		logrus.Warn("board list cache entry is corrupt, rebuilding")
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		return nil, err
	}

	boards, err := s.boards.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]BoardSummary, len(boards))
	for i, board := range boards {
		summaries[i] = BoardSummary{
			BoardID:   board.ID,
			OwnerID:   board.OwnerID,
			Title:     board.Title,
			CreatedAt: board.CreatedAt,
			UpdatedAt: board.UpdatedAt,
		}
	}

	snapshot, err := json.Marshal(summaries)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, boardListCacheKey, snapshot); err != nil {
		// The cache is not a source of truth; serve the fresh result.
		logrus.WithError(err).Warn("failed to populate board list cache")
	}
	return summaries, nil
}

func (s *BoardService) GetBoardDetail(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	return board, nil
}

func (s *BoardService) UpdateBoard(ctx context.Context, id uuid.UUID, input UpdateBoardInput, actorID uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	if board.OwnerID != actorID {
		return nil, ErrNotBoardOwner
	}

	if input.Title != "" && input.Title != board.Title {
		existing, err := s.boards.FindByTitle(ctx, input.Title)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrTitleTaken
		}
		board.Title = input.Title
	}
	if input.Description != "" {
		board.Description = input.Description
	}
	if input.BackgroundColor != "" {
		board.BackgroundColor = input.BackgroundColor
	}

	if err := s.boards.Save(ctx, board); err != nil {
		return nil, err
	}
	if err := s.evictBoardList(ctx); err != nil {
		return nil, err
	}
	return board, nil
}

// DeleteBoard soft-deletes a board. The row stays behind the DeletedAt
// filter so invitations and members keep a valid reference.
func (s *BoardService) DeleteBoard(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if board == nil {
		return ErrBoardNotFound
	}
	if board.OwnerID != actorID {
		return ErrNotBoardOwner
	}

	if err := s.boards.Delete(ctx, id); err != nil {
		return err
	}
	return s.evictBoardList(ctx)
}

func (s *BoardService) evictBoardList(ctx context.Context) error {
	return s.cache.Evict(ctx, boardListCacheKey)
}
