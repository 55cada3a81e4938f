package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"yenbot/models"
)

// MockBalanceRepository is a mock implementation of BalanceRepository
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) GetOrCreate(ctx context.Context, guildID, userID int64) (*models.Balance, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockBalanceRepository) Add(ctx context.Context, guildID, userID int64, delta int64) (int64, error) {
	args := m.Called(ctx, guildID, userID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBalanceRepository) Deduct(ctx context.Context, guildID, userID int64, amount int64) error {
	args := m.Called(ctx, guildID, userID, amount)
	return args.Error(0)
}

// MockTicketRepository is a mock implementation of TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) GetCount(ctx context.Context, guildID, userID int64, label string) (int64, error) {
	args := m.Called(ctx, guildID, userID, label)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepository) Add(ctx context.Context, guildID, userID int64, label string, n int64) (int64, error) {
	args := m.Called(ctx, guildID, userID, label, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepository) Set(ctx context.Context, guildID, userID int64, label string, count int64) (int64, error) {
	args := m.Called(ctx, guildID, userID, label, count)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.Ticket, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ticket), args.Error(1)
}

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Get(ctx context.Context, guildID, channelID int64, kind models.BoardKind) (*models.Board, error) {
	args := m.Called(ctx, guildID, channelID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Board), args.Error(1)
}

func (m *MockBoardRepository) Upsert(ctx context.Context, board *models.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

// MockContractRepository is a mock implementation of ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) Create(ctx context.Context, contract *models.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) GetByID(ctx context.Context, id int64) (*models.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *MockContractRepository) Update(ctx context.Context, contract *models.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) DeclineIfPending(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContractRepository) GetLatestAcceptedBetween(ctx context.Context, guildID, userA, userB int64) (*models.Contract, error) {
	args := m.Called(ctx, guildID, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

// MockMessenger is a mock implementation of Messenger
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendMessage(channelID int64, content string) (int64, error) {
	args := m.Called(channelID, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessenger) EditMessage(channelID, messageID int64, content string) error {
	args := m.Called(channelID, messageID, content)
	return args.Error(0)
}

func (m *MockMessenger) FetchMessage(channelID, messageID int64) (string, error) {
	args := m.Called(channelID, messageID)
	return args.String(0), args.Error(1)
}
