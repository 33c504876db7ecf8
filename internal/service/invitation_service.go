package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/komiharuu/Trello-Project/internal/mailer"
	"github.com/komiharuu/Trello-Project/internal/model"
	"github.com/komiharuu/Trello-Project/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Sender delivers invitation notifications.
type Sender interface {
	SendInvitation(to string, email mailer.InvitationEmail) error
}

// InvitationServiceInterface is the workflow surface the handlers use.
type InvitationServiceInterface interface {
	CreateInvitation(ctx context.Context, boardID uuid.UUID, memberEmail string, inviter *model.User) (*InvitationReceipt, error)
	AcceptInvitation(ctx context.Context, token string, user *model.User) error
	DeclineInvitation(ctx context.Context, token string, user *model.User) error
}

// InvitationService drives the invitation lifecycle: issuing tokens,
// guarding board membership, and moving invitations from pending to
// accepted or declined.
type InvitationService struct {
	boards      repository.BoardRepositoryInterface
	users       repository.UserRepositoryInterface
	members     repository.MemberRepositoryInterface
	invitations repository.InvitationRepositoryInterface
	mail        Sender
	appURL      string
}

var _ InvitationServiceInterface = (*InvitationService)(nil)

func NewInvitationService(
	boards repository.BoardRepositoryInterface,
	users repository.UserRepositoryInterface,
	members repository.MemberRepositoryInterface,
	invitations repository.InvitationRepositoryInterface,
	mail Sender,
	appURL string,
) *InvitationService {
	return &InvitationService{
		boards:      boards,
		users:       users,
		members:     members,
		invitations: invitations,
		mail:        mail,
		appURL:      appURL,
	}
}

// InvitationReceipt acknowledges a created (or re-sent) invitation.
// NotificationSent is false when the invitation row was persisted but
// the email could not be delivered; the invitation is still valid and
// accept/decline work purely off the token.
type InvitationReceipt struct {
	Token            string
	NotificationSent bool
}

// ensureNotMember is the membership guard: it fails when the user
// already holds a member row on the board. This check is the fast path
// only; the unique index on members(board_id, user_id) is what actually
// prevents duplicates under concurrent accepts.
func (s *InvitationService) ensureNotMember(ctx context.Context, boardID, userID uuid.UUID) error {
	existing, err := s.members.FindByBoardAndUser(ctx, boardID, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyMember
	}
	return nil
}

// CreateInvitation invites a registered user to a board by email.
// A still-pending invitation for the same (board, email) is reused
// rather than duplicated, so repeated invites return the same token.
func (s *InvitationService) CreateInvitation(ctx context.Context, boardID uuid.UUID, memberEmail string, inviter *model.User) (*InvitationReceipt, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}

	// Inviting an email without an account is not supported.
	invitee, err := s.users.FindByEmail(ctx, memberEmail)
	if err != nil {
		return nil, err
	}
	if invitee == nil {
		return nil, ErrUserNotFound
	}

	if err := s.ensureNotMember(ctx, board.ID, invitee.ID); err != nil {
		return nil, err
	}

	prior, err := s.invitations.FindLatestByBoardAndEmail(ctx, board.ID, memberEmail)
	if err != nil {
		return nil, err
	}

	var invitation *model.Invitation
	switch {
	case prior != nil && prior.Status == model.InvitationAccepted:
		// An already-joined invitee must not be re-invited.
		return nil, ErrAlreadyAccepted
	case prior != nil && prior.Status == model.InvitationPending:
		invitation = prior
	default:
		// No prior invitation, or the last one was declined: start a
		// new invitation cycle.
		invitation, err = s.persistNewInvitation(ctx, board.ID, memberEmail)
		if err != nil {
			return nil, err
		}
	}

	receipt := &InvitationReceipt{Token: invitation.Token, NotificationSent: true}
	email := mailer.InvitationEmail{
		BoardTitle:  board.Title,
		InviterName: inviter.Name,
		AcceptURL:   fmt.Sprintf("%s/accept-invitation?token=%s", s.appURL, invitation.Token),
		DeclineURL:  fmt.Sprintf("%s/decline-invitation?token=%s", s.appURL, invitation.Token),
	}
	if err := s.mail.SendInvitation(memberEmail, email); err != nil {
		// Best effort: the invitation row stays valid without the mail.
		logrus.WithError(err).WithFields(logrus.Fields{
			"board_id": board.ID,
			"email":    memberEmail,
		}).Error("invitation notification delivery failed")
		receipt.NotificationSent = false
	}

	return receipt, nil
}

// persistNewInvitation mints a unique token and inserts a pending row.
// If a concurrent writer claims the same token between the pre-check
// and the insert, the unique index rejects it and we mint again.
func (s *InvitationService) persistNewInvitation(ctx context.Context, boardID uuid.UUID, memberEmail string) (*model.Invitation, error) {
	for {
		token, err := issueToken(ctx, s.invitations.TokenExists)
		if err != nil {
			return nil, err
		}

		invitation := &model.Invitation{
			BoardID:     boardID,
			MemberEmail: memberEmail,
			Status:      model.InvitationPending,
			Token:       token,
		}
		err = s.invitations.Create(ctx, invitation)
		if errors.Is(err, repository.ErrDuplicateToken) {
			logrus.WithField("board_id", boardID).Warn("invitation token collided on insert, reissuing")
			continue
		}
		if err != nil {
			return nil, err
		}
		return invitation, nil
	}
}

// AcceptInvitation turns a pending invitation into board membership.
// The member insert and the status transition form one logical unit: a
// duplicate-key rejection of the insert aborts the transition.
func (s *InvitationService) AcceptInvitation(ctx context.Context, token string, user *model.User) error {
	invitation, err := s.lookupActionable(ctx, token)
	if err != nil {
		return err
	}

	if err := s.ensureNotMember(ctx, invitation.BoardID, user.ID); err != nil {
		return err
	}

	member := &model.Member{
		BoardID:      invitation.BoardID,
		UserID:       user.ID,
		Role:         model.RoleMember,
		InvitationID: &invitation.ID,
	}
	if err := s.members.Create(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicateMember) {
			// Lost a race against another accept for the same user.
			return ErrAlreadyMember
		}
		return err
	}

	invitation.Status = model.InvitationAccepted
	return s.invitations.Save(ctx, invitation)
}

// DeclineInvitation marks a pending invitation as declined. No member
// row is created and the row becomes inert history.
func (s *InvitationService) DeclineInvitation(ctx context.Context, token string, user *model.User) error {
	invitation, err := s.lookupActionable(ctx, token)
	if err != nil {
		return err
	}

	if err := s.ensureNotMember(ctx, invitation.BoardID, user.ID); err != nil {
		return err
	}

	invitation.Status = model.InvitationDeclined
	return s.invitations.Save(ctx, invitation)
}

// lookupActionable resolves a token to an invitation that may still
// transition. Accepted rows conflict; declined rows are treated as if
// the token no longer resolves.
func (s *InvitationService) lookupActionable(ctx context.Context, token string) (*model.Invitation, error) {
	invitation, err := s.invitations.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, ErrInvitationNotFound
	}

	switch invitation.Status {
	case model.InvitationAccepted:
		return nil, ErrAlreadyAccepted
	case model.InvitationDeclined:
		return nil, ErrInvitationNotFound
	}
	return invitation, nil
}
