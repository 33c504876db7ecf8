package handler

import (
	"net/http"

	"github.com/komiharuu/Trello-Project/internal/middleware"
	"github.com/komiharuu/Trello-Project/internal/model"
	"github.com/komiharuu/Trello-Project/internal/repository"
	"github.com/komiharuu/Trello-Project/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvitationHandler struct {
	invitations service.InvitationServiceInterface
	users       repository.UserRepositoryInterface
	members     repository.MemberRepositoryInterface
}

func NewInvitationHandler(
	invitations service.InvitationServiceInterface,
	users repository.UserRepositoryInterface,
	members repository.MemberRepositoryInterface,
) *InvitationHandler {
	return &InvitationHandler{
		invitations: invitations,
		users:       users,
		members:     members,
	}
}

type CreateInvitationRequest struct {
	MemberEmail string `json:"memberEmail" binding:"required,email"`
}

type MemberResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// actingUser resolves the authenticated user's full record. The
// middleware only carries the id; invitation operations need the email
// and display name as well.
func (h *InvitationHandler) actingUser(c *gin.Context) (*model.User, bool) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}

	id, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return nil, false
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return nil, false
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}
	return user, true
}

// Create invites a registered user to a board by email
func (h *InvitationHandler) Create(c *gin.Context) {
	inviter, ok := h.actingUser(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	receipt, err := h.invitations.CreateInvitation(c.Request.Context(), boardID, req.MemberEmail, inviter)
	if err != nil {
		c.JSON(statusForServiceError(err), gin.H{"error": err.Error()})
		return
	}

	message := "Invitation email sent successfully"
	if !receipt.NotificationSent {
		// The invitation row exists and the token works even though the
		// email never went out.
		message = "Invitation created, notification pending"
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// Accept joins the authenticated user to the board behind the token
func (h *InvitationHandler) Accept(c *gin.Context) {
	user, ok := h.actingUser(c)
	if !ok {
		return
	}

	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invitation token is required"})
		return
	}

	if err := h.invitations.AcceptInvitation(c.Request.Context(), token, user); err != nil {
		c.JSON(statusForServiceError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Successfully joined the board"})
}

// Decline marks the invitation behind the token as declined
func (h *InvitationHandler) Decline(c *gin.Context) {
	user, ok := h.actingUser(c)
	if !ok {
		return
	}

	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invitation token is required"})
		return
	}

	if err := h.invitations.DeclineInvitation(c.Request.Context(), token, user); err != nil {
		c.JSON(statusForServiceError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation declined"})
}

// GetBoardMembers lists the confirmed members of a board
func (h *InvitationHandler) GetBoardMembers(c *gin.Context) {
	if _, ok := h.actingUser(c); !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	members, err := h.members.ListByBoard(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board members"})
		return
	}

	response := make([]MemberResponse, len(members))
	for i, member := range members {
		response[i] = MemberResponse{
			UserID: member.UserID.String(),
			Email:  member.User.Email,
			Name:   member.User.Name,
			Role:   member.Role,
		}
	}

	c.JSON(http.StatusOK, response)
}
