package handler

import (
	"net/http"
	"time"

	"github.com/komiharuu/Trello-Project/internal/middleware"
	"github.com/komiharuu/Trello-Project/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boards service.BoardServiceInterface
}

func NewBoardHandler(boards service.BoardServiceInterface) *BoardHandler {
	return &BoardHandler{boards: boards}
}

type CreateBoardRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	BackgroundColor string `json:"backgroundColor"`
}

type UpdateBoardRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	BackgroundColor string `json:"backgroundColor"`
}

type BoardResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	BackgroundColor string    `json:"backgroundColor"`
	OwnerID         string    `json:"ownerId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Create creates a new board owned by the authenticated user
func (h *BoardHandler) Create(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	ownerID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.CreateBoard(c.Request.Context(), service.CreateBoardInput{
		Title:           req.Title,
		Description:     req.Description,
		BackgroundColor: req.BackgroundColor,
	}, ownerID)
	if err != nil {
		c.JSON(statusForServiceError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, BoardResponse{
		ID:              board.ID.String(),
		Title:           board.Title,
		Description:     board.Description,
		BackgroundColor: board.BackgroundColor,
		OwnerID:         board.OwnerID.String(),
		CreatedAt:       board.CreatedAt,
		UpdatedAt:       board.UpdatedAt,
	})
}

// GetList returns the board listing, newest first, served through the
// listing cache
func (h *BoardHandler) GetList(c *gin.Context) {
	summaries, err := h.boards.GetBoardList(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetByID returns the detail of a single board
func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, err := h.boards.GetBoardDetail(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(statusForServiceError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, BoardResponse{
		ID:              board.ID.String(),
		Title:           board.Title,
		Description:     board.Description,
		BackgroundColor: board.BackgroundColor,
		OwnerID:         board.OwnerID.String(),
		CreatedAt:       board.CreatedAt,
		UpdatedAt:       board.UpdatedAt,
	})
}

// Update modifies a board; only the owner may do this
func (h *BoardHandler) Update(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	actorID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.UpdateBoard(c.Request.Context(), boardID, service.UpdateBoardInput{
		Title:           req.Title,
		Description:     req.Description,
		BackgroundColor: req.BackgroundColor,
	}, actorID)
	if err != nil {
		c.JSON(statusForServiceError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, BoardResponse{
		ID:              board.ID.String(),
		Title:           board.Title,
		Description:     board.Description,
		BackgroundColor: board.BackgroundColor,
		OwnerID:         board.OwnerID.String(),
		CreatedAt:       board.CreatedAt,
		UpdatedAt:       board.UpdatedAt,
	})
}

// Delete soft-deletes a board; only the owner may do this
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	actorID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	if err := h.boards.DeleteBoard(c.Request.Context(), boardID, actorID); err != nil {
		c.JSON(statusForServiceError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}
