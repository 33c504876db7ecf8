package service_test

import (
	"context"
	"testing"

	"github.com/komiharuu/Trello-Project/internal/mailer"
	"github.com/komiharuu/Trello-Project/internal/model"
	"github.com/komiharuu/Trello-Project/internal/repository"
	"github.com/komiharuu/Trello-Project/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const appURL = "http://localhost:8080"

type invitationFixture struct {
	boards      *MockBoardRepository
	users       *MockUserRepository
	members     *MockMemberRepository
	invitations *MockInvitationRepository
	sender      *MockSender
	svc         *service.InvitationService

	board   *model.Board
	inviter *model.User
	invitee *model.User
}

func setupInvitationTest() *invitationFixture {
	f := &invitationFixture{
		boards:      new(MockBoardRepository),
		users:       new(MockUserRepository),
		members:     new(MockMemberRepository),
		invitations: new(MockInvitationRepository),
		sender:      new(MockSender),
	}
	f.svc = service.NewInvitationService(f.boards, f.users, f.members, f.invitations, f.sender, appURL)

	f.inviter = &model.User{ID: uuid.New(), Email: "owner@example.com", Name: "Board Owner"}
	f.invitee = &model.User{ID: uuid.New(), Email: "invitee@example.com", Name: "Invitee"}
	f.board = &model.Board{ID: uuid.New(), Title: "Sprint Plan", OwnerID: f.inviter.ID, Owner: *f.inviter}
	return f
}

func TestCreateInvitation_NewInvitation(t *testing.T) {
	// Arrange
	f := setupInvitationTest()

	f.boards.On("GetByID", mock.Anything, f.board.ID).Return(f.board, nil)
	f.users.On("FindByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	f.members.On("FindByBoardAndUser", mock.Anything, f.board.ID, f.invitee.ID).Return(nil, nil)
	f.invitations.On("FindLatestByBoardAndEmail", mock.Anything, f.board.ID, f.invitee.Email).Return(nil, nil)
	f.invitations.On("TokenExists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)

	var created *model.Invitation
	f.invitations.On("Create", mock.Anything, mock.AnythingOfType("*model.Invitation")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Invitation)
		}).
		Return(nil)
	f.sender.On("SendInvitation", f.invitee.Email, mock.AnythingOfType("mailer.InvitationEmail")).Return(nil)

	// Act
	receipt, err := f.svc.CreateInvitation(context.Background(), f.board.ID, f.invitee.Email, f.inviter)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, receipt)
	assert.Len(t, receipt.Token, 36)
	assert.True(t, receipt.NotificationSent)

	assert.NotNil(t, created)
	assert.Equal(t, model.InvitationPending, created.Status)
	assert.Equal(t, receipt.Token, created.Token)
	assert.Equal(t, f.board.ID, created.BoardID)

	f.invitations.AssertExpectations(t)
	f.sender.AssertExpectations(t)
}

func TestCreateInvitation_EmbedsTokenLinks(t *testing.T) {
	// Arrange
	f := setupInvitationTest()

	pending := &model.Invitation{
		ID:          uuid.New(),
		BoardID:     f.board.ID,
		MemberEmail: f.invitee.Email,
		Status:      model.InvitationPending,
		Token:       uuid.NewString(),
	}
	f.boards.On("GetByID", mock.Anything, f.board.ID).Return(f.board, nil)
	f.users.On("FindByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	f.members.On("FindByBoardAndUser", mock.Anything, f.board.ID, f.invitee.ID).Return(nil, nil)
	f.invitations.On("FindLatestByBoardAndEmail", mock.Anything, f.board.ID, f.invitee.Email).Return(pending, nil)

	var sent mailer.InvitationEmail
	f.sender.On("SendInvitation", f.invitee.Email, mock.AnythingOfType("mailer.InvitationEmail")).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).(mailer.InvitationEmail)
		}).
		Return(nil)

	// Act
	_, err := f.svc.CreateInvitation(context.Background(), f.board.ID, f.invitee.Email, f.inviter)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, f.board.Title, sent.BoardTitle)
	assert.Equal(t, f.inviter.Name, sent.InviterName)
	assert.Equal(t, appURL+"/accept-invitation?token="+pending.Token, sent.AcceptURL)
	assert.Equal(t, appURL+"/decline-invitation?token="+pending.Token, sent.DeclineURL)
}

func TestCreateInvitation_BoardNotFound(t *testing.T) {
	// Arrange
	f := setupInvitationTest()
	boardID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).Return(nil, nil)

	// Act
	receipt, err := f.svc.CreateInvitation(context.Background(), boardID, f.invitee.Email, f.inviter)

	// Assert
	assert.ErrorIs(t, err, service.ErrBoardNotFound)
	assert.Nil(t, receipt)
}

func TestCreateInvitation_UnregisteredEmail(t *testing.T) {
	// Arrange: inviting an email with no account is rejected, not queued
	f := setupInvitationTest()
	f.boards.On("GetByID", mock.Anything, f.board.ID).Return(f.board, nil)
	f.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	// Act
	receipt, err := f.svc.CreateInvitation(context.Background(), f.board.ID, "ghost@example.com", f.inviter)

	// Assert
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	assert.Nil(t, receipt)
	f.invitations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateInvitation_AlreadyMember(t *testing.T) {
	// Arrange
	f := setupInvitationTest()
	existing := &model.Member{ID: uuid.New(), BoardID: f.board.ID, UserID: f.invitee.ID, Role: model.RoleMember}

	f.boards.On("GetByID", mock.Anything, f.board.ID).Return(f.board, nil)
	f.users.On("FindByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	f.members.On("FindByBoardAndUser", mock.Anything, f.board.ID, f.invitee.ID).Return(existing, nil)

	// Act
	receipt, err := f.svc.CreateInvitation(context.Background(), f.board.ID, f.invitee.Email, f.inviter)

	// Assert
	assert.ErrorIs(t, err, service.ErrAlreadyMember)
	assert.Nil(t, receipt)
}

func TestCreateInvitation_PendingReuse(t *testing.T) {
	// Arrange: a pending invitation exists for the same (board, email)
	f := setupInvitationTest()
	pending := &model.Invitation{
		ID:          uuid.New(),
		BoardID:     f.board.ID,
		MemberEmail: f.invitee.Email,
		Status:      model.InvitationPending,
		Token:       uuid.NewString(),
	}

	f.boards.On("GetByID", mock.Anything, f.board.ID).Return(f.board, nil)
	f.users.On("FindByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	f.members.On("FindByBoardAndUser", mock.Anything, f.board.ID, f.invitee.ID).Return(nil, nil)
	f.invitations.On("FindLatestByBoardAndEmail", mock.Anything, f.board.ID, f.invitee.Email).Return(pending, nil)
	f.sender.On("SendInvitation", f.invitee.Email, mock.AnythingOfType("mailer.InvitationEmail")).Return(nil)

	// Act: invite twice while the invitation is still pending
	first, err1 := f.svc.CreateInvitation(context.Background(), f.board.ID, f.invitee.Email, f.inviter)
	second, err2 := f.svc.CreateInvitation(context.Background(), f.board.ID, f.invitee.Email, f.inviter)

	// Assert: same token both times, no new row, notification re-sent
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, pending.Token, first.Token)
	assert.Equal(t, first.Token, second.Token)
	f.invitations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.sender.AssertNumberOfCalls(t, "SendInvitation", 2)
}

func TestCreateInvitation_AfterAccepted(t *testing.T) {
	// Arrange: the invitee already accepted an earlier invitation
	f := setupInvitationTest()
	accepted := &model.Invitation{
		ID:          uuid.New(),
		BoardID:     f.board.ID,
		MemberEmail: f.invitee.Email,
		Status:      model.InvitationAccepted,
		Token:       uuid.NewString(),
	}

	f.boards.On("GetByID", mock.Anything, f.board.ID).Return(f.board, nil)
	f.users.On("FindByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	f.members.On("FindByBoardAndUser", mock.Anything, f.board.ID, f.invitee.ID).Return(nil, nil)
	f.invitations.On("FindLatestByBoardAndEmail", mock.Anything, f.board.ID, f.invitee.Email).Return(accepted, nil)

	// Act
	receipt, err := f.svc.CreateInvitation(context.Background(), f.board.ID, f.invitee.Email, f.inviter)

	// Assert
	assert.ErrorIs(t, err, service.ErrAlreadyAccepted)
	assert.Nil(t, receipt)
	f.sender.AssertNotCalled(t, "SendInvitation", mock.Anything, mock.Anything)
}

func TestCreateInvitation_AfterDeclined(t *testing.T) {
	// Arrange: a declined invitation starts a brand-new cycle
	f := setupInvitationTest()
	declined := &model.Invitation{
		ID:          uuid.New(),
		BoardID:     f.board.ID,
		MemberEmail: f.invitee.Email,
		Status:      model.InvitationDeclined,
		Token:       uuid.NewString(),
	}

	f.boards.On("GetByID", mock.Anything, f.board.ID).Return(f.board, nil)
	f.users.On("FindByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	f.members.On("FindByBoardAndUser", mock.Anything, f.board.ID, f.invitee.ID).Return(nil, nil)
	f.invitations.On("FindLatestByBoardAndEmail", mock.Anything, f.board.ID, f.invitee.Email).Return(declined, nil)
	f.invitations.On("TokenExists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	f.invitations.On("Create", mock.Anything, mock.AnythingOfType("*model.Invitation")).Return(nil)
	f.sender.On("SendInvitation", f.invitee.Email, mock.AnythingOfType("mailer.InvitationEmail")).Return(nil)

	// Act
	receipt, err := f.svc.CreateInvitation(context.Background(), f.board.ID, f.invitee.Email, f.inviter)

	// Assert: a fresh token, not the declined one
	assert.NoError(t, err)
	assert.NotEqual(t, declined.Token, receipt.Token)
	f.invitations.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*model.Invitation"))
}

func TestCreateInvitation_NotificationFailure(t *testing.T) {
	// Arrange: mail delivery fails but the invitation row must survive
	f := setupInvitationTest()

	f.boards.On("GetByID", mock.Anything, f.board.ID).Return(f.board, nil)
	f.users.On("FindByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	f.members.On("FindByBoardAndUser", mock.Anything, f.board.ID, f.invitee.ID).Return(nil, nil)
	f.invitations.On("FindLatestByBoardAndEmail", mock.Anything, f.board.ID, f.invitee.Email).Return(nil, nil)
	f.invitations.On("TokenExists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	f.invitations.On("Create", mock.Anything, mock.AnythingOfType("*model.Invitation")).Return(nil)
	f.sender.On("SendInvitation", f.invitee.Email, mock.AnythingOfType("mailer.InvitationEmail")).Return(assert.AnError)

	// Act
	receipt, err := f.svc.CreateInvitation(context.Background(), f.board.ID, f.invitee.Email, f.inviter)

	// Assert: no error, but the caller learns the mail never went out
	assert.NoError(t, err)
	assert.NotNil(t, receipt)
	assert.False(t, receipt.NotificationSent)
	assert.Len(t, receipt.Token, 36)
}

func TestCreateInvitation_TokenCollisionOnInsert(t *testing.T) {
	// Arrange: a concurrent writer claims the token between the
	// pre-check and the insert; the workflow must mint a fresh one
	f := setupInvitationTest()

	f.boards.On("GetByID", mock.Anything, f.board.ID).Return(f.board, nil)
	f.users.On("FindByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	f.members.On("FindByBoardAndUser", mock.Anything, f.board.ID, f.invitee.ID).Return(nil, nil)
	f.invitations.On("FindLatestByBoardAndEmail", mock.Anything, f.board.ID, f.invitee.Email).Return(nil, nil)
	f.invitations.On("TokenExists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	f.invitations.On("Create", mock.Anything, mock.AnythingOfType("*model.Invitation")).Return(repository.ErrDuplicateToken).Once()
	f.invitations.On("Create", mock.Anything, mock.AnythingOfType("*model.Invitation")).Return(nil).Once()
	f.sender.On("SendInvitation", f.invitee.Email, mock.AnythingOfType("mailer.InvitationEmail")).Return(nil)

	// Act
	receipt, err := f.svc.CreateInvitation(context.Background(), f.board.ID, f.invitee.Email, f.inviter)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, receipt.Token, 36)
	f.invitations.AssertNumberOfCalls(t, "Create", 2)
}

func TestAcceptInvitation_Success(t *testing.T) {
	// Arrange
	f := setupInvitationTest()
	invitation := &model.Invitation{
		ID:          uuid.New(),
		BoardID:     f.board.ID,
		MemberEmail: f.invitee.Email,
		Status:      model.InvitationPending,
		Token:       uuid.NewString(),
	}

	f.invitations.On("FindByToken", mock.Anything, invitation.Token).Return(invitation, nil)
	f.members.On("FindByBoardAndUser", mock.Anything, f.board.ID, f.invitee.ID).Return(nil, nil)

	var created *model.Member
	f.members.On("Create", mock.Anything, mock.AnythingOfType("*model.Member")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Member)
		}).
		Return(nil)
	f.invitations.On("Save", mock.Anything, invitation).Return(nil)

	// Act
	err := f.svc.AcceptInvitation(context.Background(), invitation.Token, f.invitee)

	// Assert: member row created and invitation transitioned
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, model.RoleMember, created.Role)
	assert.Equal(t, f.board.ID, created.BoardID)
	assert.Equal(t, f.invitee.ID, created.UserID)
	assert.NotNil(t, created.InvitationID)
	assert.Equal(t, invitation.ID, *created.InvitationID)
	assert.Equal(t, model.InvitationAccepted, invitation.Status)
	f.invitations.AssertExpectations(t)
}

func TestAcceptInvitation_UnknownToken(t *testing.T) {
	// Arrange
	f := setupInvitationTest()
	f.invitations.On("FindByToken", mock.Anything, "no-such-token").Return(nil, nil)

	// Act
	err := f.svc.AcceptInvitation(context.Background(), "no-such-token", f.invitee)

	// Assert
	assert.ErrorIs(t, err, service.ErrInvitationNotFound)
}

func TestAcceptInvitation_AlreadyAccepted(t *testing.T) {
	// Arrange
	f := setupInvitationTest()
	invitation := &model.Invitation{
		ID:      uuid.New(),
		BoardID: f.board.ID,
		Status:  model.InvitationAccepted,
		Token:   uuid.NewString(),
	}
	f.invitations.On("FindByToken", mock.Anything, invitation.Token).Return(invitation, nil)

	// Act
	err := f.svc.AcceptInvitation(context.Background(), invitation.Token, f.invitee)

	// Assert: terminal state, no member row attempted
	assert.ErrorIs(t, err, service.ErrAlreadyAccepted)
	f.members.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAcceptInvitation_DeclinedIsInert(t *testing.T) {
	// Arrange: a declined row behaves like a token that no longer resolves
	f := setupInvitationTest()
	invitation := &model.Invitation{
		ID:      uuid.New(),
		BoardID: f.board.ID,
		Status:  model.InvitationDeclined,
		Token:   uuid.NewString(),
	}
	f.invitations.On("FindByToken", mock.Anything, invitation.Token).Return(invitation, nil)

	// Act
	err := f.svc.AcceptInvitation(context.Background(), invitation.Token, f.invitee)

	// Assert
	assert.ErrorIs(t, err, service.ErrInvitationNotFound)
}

func TestAcceptInvitation_DuplicateMemberRace(t *testing.T) {
	// Arrange: two accepts with distinct valid tokens raced past the
	// guard; the storage constraint rejects the second insert and the
	// violation must surface as the same Conflict
	f := setupInvitationTest()
	invitation := &model.Invitation{
		ID:      uuid.New(),
		BoardID: f.board.ID,
		Status:  model.InvitationPending,
		Token:   uuid.NewString(),
	}

	f.invitations.On("FindByToken", mock.Anything, invitation.Token).Return(invitation, nil)
	f.members.On("FindByBoardAndUser", mock.Anything, f.board.ID, f.invitee.ID).Return(nil, nil)
	f.members.On("Create", mock.Anything, mock.AnythingOfType("*model.Member")).Return(repository.ErrDuplicateMember)

	// Act
	err := f.svc.AcceptInvitation(context.Background(), invitation.Token, f.invitee)

	// Assert: Conflict, and the invitation was not transitioned
	assert.ErrorIs(t, err, service.ErrAlreadyMember)
	f.invitations.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Equal(t, model.InvitationPending, invitation.Status)
}

func TestDeclineInvitation_Success(t *testing.T) {
	// Arrange
	f := setupInvitationTest()
	invitation := &model.Invitation{
		ID:      uuid.New(),
		BoardID: f.board.ID,
		Status:  model.InvitationPending,
		Token:   uuid.NewString(),
	}

	f.invitations.On("FindByToken", mock.Anything, invitation.Token).Return(invitation, nil)
	f.members.On("FindByBoardAndUser", mock.Anything, f.board.ID, f.invitee.ID).Return(nil, nil)
	f.invitations.On("Save", mock.Anything, invitation).Return(nil)

	// Act
	err := f.svc.DeclineInvitation(context.Background(), invitation.Token, f.invitee)

	// Assert: declined, and no member row was ever attempted
	assert.NoError(t, err)
	assert.Equal(t, model.InvitationDeclined, invitation.Status)
	f.members.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeclineInvitation_AfterAccept(t *testing.T) {
	// Arrange
	f := setupInvitationTest()
	invitation := &model.Invitation{
		ID:      uuid.New(),
		BoardID: f.board.ID,
		Status:  model.InvitationAccepted,
		Token:   uuid.NewString(),
	}
	f.invitations.On("FindByToken", mock.Anything, invitation.Token).Return(invitation, nil)

	// Act
	err := f.svc.DeclineInvitation(context.Background(), invitation.Token, f.invitee)

	// Assert
	assert.ErrorIs(t, err, service.ErrAlreadyAccepted)
	assert.Equal(t, model.InvitationAccepted, invitation.Status)
}

func TestInvitationLifecycle_Scenario(t *testing.T) {
	// Arrange: full cycle on board "Sprint Plan" — invite an email with
	// no account, register it, invite again, accept, then accept again
	f := setupInvitationTest()

	f.boards.On("GetByID", mock.Anything, f.board.ID).Return(f.board, nil)
	f.members.On("FindByBoardAndUser", mock.Anything, f.board.ID, f.invitee.ID).Return(nil, nil).Twice()
	f.invitations.On("FindLatestByBoardAndEmail", mock.Anything, f.board.ID, f.invitee.Email).Return(nil, nil)
	f.invitations.On("TokenExists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)

	var persisted *model.Invitation
	f.invitations.On("Create", mock.Anything, mock.AnythingOfType("*model.Invitation")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*model.Invitation)
			persisted.ID = uuid.New()
		}).
		Return(nil)
	f.sender.On("SendInvitation", f.invitee.Email, mock.AnythingOfType("mailer.InvitationEmail")).Return(nil)

	// Act 1: no account yet
	f.users.On("FindByEmail", mock.Anything, f.invitee.Email).Return(nil, nil).Once()
	_, err := f.svc.CreateInvitation(context.Background(), f.board.ID, f.invitee.Email, f.inviter)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	// Act 2: account exists now, invitation goes out
	f.users.On("FindByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	receipt, err := f.svc.CreateInvitation(context.Background(), f.board.ID, f.invitee.Email, f.inviter)
	assert.NoError(t, err)
	assert.Len(t, receipt.Token, 36)

	// Act 3: accept creates the member row and transitions the row
	f.invitations.On("FindByToken", mock.Anything, receipt.Token).Return(persisted, nil)
	f.members.On("Create", mock.Anything, mock.AnythingOfType("*model.Member")).Return(nil)
	f.invitations.On("Save", mock.Anything, persisted).Return(nil)
	err = f.svc.AcceptInvitation(context.Background(), receipt.Token, f.invitee)
	assert.NoError(t, err)
	assert.Equal(t, model.InvitationAccepted, persisted.Status)

	// Act 4: a second accept on the same token is a conflict
	err = f.svc.AcceptInvitation(context.Background(), receipt.Token, f.invitee)
	assert.ErrorIs(t, err, service.ErrAlreadyAccepted)
}
