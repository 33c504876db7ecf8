package service_test

import (
	"context"

	"github.com/komiharuu/Trello-Project/internal/mailer"
	"github.com/komiharuu/Trello-Project/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mocks for the repository interfaces and the mail sender, shared by
// the service tests in this package.

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Create(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) FindByTitle(ctx context.Context, title string) (*model.Board, error) {
	args := m.Called(ctx, title)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) List(ctx context.Context) ([]model.Board, error) {
	args := m.Called(ctx)
	boards := args.Get(0)
	if boards == nil {
		return nil, args.Error(1)
	}
	return boards.([]model.Board), args.Error(1)
}

func (m *MockBoardRepository) Save(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) FindByBoardAndUser(ctx context.Context, boardID, userID uuid.UUID) (*model.Member, error) {
	args := m.Called(ctx, boardID, userID)
	member := args.Get(0)
	if member == nil {
		return nil, args.Error(1)
	}
	return member.(*model.Member), args.Error(1)
}

func (m *MockMemberRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.Member, error) {
	args := m.Called(ctx, boardID)
	members := args.Get(0)
	if members == nil {
		return nil, args.Error(1)
	}
	return members.([]model.Member), args.Error(1)
}

type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) Create(ctx context.Context, invitation *model.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitationRepository) Save(ctx context.Context, invitation *model.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitationRepository) FindByToken(ctx context.Context, token string) (*model.Invitation, error) {
	args := m.Called(ctx, token)
	invitation := args.Get(0)
	if invitation == nil {
		return nil, args.Error(1)
	}
	return invitation.(*model.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) FindLatestByBoardAndEmail(ctx context.Context, boardID uuid.UUID, email string) (*model.Invitation, error) {
	args := m.Called(ctx, boardID, email)
	invitation := args.Get(0)
	if invitation == nil {
		return nil, args.Error(1)
	}
	return invitation.(*model.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendInvitation(to string, email mailer.InvitationEmail) error {
	args := m.Called(to, email)
	return args.Error(0)
}
