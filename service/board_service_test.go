package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"yenbot/models"
)

const (
	testTicketChannelID = int64(701)
	testResultChannelID = int64(702)
)

func newBoardFixture() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockBoardRepository, *MockTicketRepository, *MockMessenger) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBoardRepo := new(MockBoardRepository)
	mockTicketRepo := new(MockTicketRepository)
	mockMessenger := new(MockMessenger)

	mockUoW.SetRepositories(new(MockBalanceRepository), mockTicketRepo, mockBoardRepo, new(MockContractRepository))
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", mock.Anything).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	return mockFactory, mockUoW, mockBoardRepo, mockTicketRepo, mockMessenger
}

func TestBoardService_EnsureBoard_ReturnsExisting(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockBoardRepo, _, mockMessenger := newBoardFixture()

	existing := &models.Board{GuildID: testGuildID, ChannelID: testTicketChannelID, Kind: models.BoardKindTicket, MessageID: 9001}
	mockBoardRepo.On("Get", ctx, testGuildID, testTicketChannelID, models.BoardKindTicket).Return(existing, nil)
	mockMessenger.On("FetchMessage", testTicketChannelID, int64(9001)).Return("content", nil)

	service := NewBoardService(mockFactory, mockMessenger, testTicketChannelID, testResultChannelID)
	board, err := service.EnsureBoard(ctx, testGuildID, models.BoardKindTicket)

	assert.NoError(t, err)
	assert.Equal(t, int64(9001), board.MessageID)
	mockMessenger.AssertNotCalled(t, "SendMessage", testTicketChannelID, mock.Anything)
}

func TestBoardService_EnsureBoard_RecreatesDeletedMessage(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockBoardRepo, _, mockMessenger := newBoardFixture()

	stale := &models.Board{GuildID: testGuildID, ChannelID: testTicketChannelID, Kind: models.BoardKindTicket, MessageID: 9001}
	mockBoardRepo.On("Get", ctx, testGuildID, testTicketChannelID, models.BoardKindTicket).Return(stale, nil)
	mockMessenger.On("FetchMessage", testTicketChannelID, int64(9001)).Return("", ErrMessageNotFound)
	mockMessenger.On("SendMessage", testTicketChannelID, mock.AnythingOfType("string")).Return(int64(9002), nil)
	mockBoardRepo.On("Upsert", ctx, mock.MatchedBy(func(b *models.Board) bool {
		return b.MessageID == 9002 && b.Kind == models.BoardKindTicket
	})).Return(nil)

	service := NewBoardService(mockFactory, mockMessenger, testTicketChannelID, testResultChannelID)
	board, err := service.EnsureBoard(ctx, testGuildID, models.BoardKindTicket)

	assert.NoError(t, err)
	assert.Equal(t, int64(9002), board.MessageID)
	mockBoardRepo.AssertExpectations(t)
}

func TestBoardService_EnsureBoard_FirstTimeCreates(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockBoardRepo, _, mockMessenger := newBoardFixture()

	mockBoardRepo.On("Get", ctx, testGuildID, testResultChannelID, models.BoardKindResult).Return(nil, nil)
	mockMessenger.On("SendMessage", testResultChannelID, mock.AnythingOfType("string")).Return(int64(9010), nil)
	mockBoardRepo.On("Upsert", ctx, mock.AnythingOfType("*models.Board")).Return(nil)

	service := NewBoardService(mockFactory, mockMessenger, testTicketChannelID, testResultChannelID)
	board, err := service.EnsureBoard(ctx, testGuildID, models.BoardKindResult)

	assert.NoError(t, err)
	assert.Equal(t, int64(9010), board.MessageID)
}

func TestBoardService_EnsureBoard_UnconfiguredChannel(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, _, _, mockMessenger := newBoardFixture()

	service := NewBoardService(mockFactory, mockMessenger, 0, 0)
	board, err := service.EnsureBoard(ctx, testGuildID, models.BoardKindTicket)

	assert.NoError(t, err)
	assert.Nil(t, board)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestBoardService_RefreshTicketBoard_EditsInPlace(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockBoardRepo, mockTicketRepo, mockMessenger := newBoardFixture()

	existing := &models.Board{GuildID: testGuildID, ChannelID: testTicketChannelID, Kind: models.BoardKindTicket, MessageID: 9001}
	mockBoardRepo.On("Get", ctx, testGuildID, testTicketChannelID, models.BoardKindTicket).Return(existing, nil)
	mockMessenger.On("FetchMessage", testTicketChannelID, int64(9001)).Return("old", nil)
	mockTicketRepo.On("ListByGuild", ctx, testGuildID).Return([]*models.Ticket{
		{GuildID: testGuildID, UserID: 100, Label: "coaching", Count: 2},
	}, nil)
	mockMessenger.On("EditMessage", testTicketChannelID, int64(9001), mock.MatchedBy(func(content string) bool {
		return content != "old"
	})).Return(nil)

	service := NewBoardService(mockFactory, mockMessenger, testTicketChannelID, testResultChannelID)
	err := service.RefreshTicketBoard(ctx, testGuildID)

	assert.NoError(t, err)
	mockMessenger.AssertExpectations(t)
}

func TestBoardService_AppendResult_PrependsNewest(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, mockBoardRepo, _, mockMessenger := newBoardFixture()

	existing := &models.Board{GuildID: testGuildID, ChannelID: testResultChannelID, Kind: models.BoardKindResult, MessageID: 9010}
	mockBoardRepo.On("Get", ctx, testGuildID, testResultChannelID, models.BoardKindResult).Return(existing, nil)
	mockMessenger.On("FetchMessage", testResultChannelID, int64(9010)).Return("older line", nil)

	var edited string
	mockMessenger.On("EditMessage", testResultChannelID, int64(9010), mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		edited = args.String(2)
	}).Return(nil)

	service := NewBoardService(mockFactory, mockMessenger, testTicketChannelID, testResultChannelID)
	err := service.AppendResult(ctx, testGuildID, "newest line")

	assert.NoError(t, err)
	assert.Equal(t, "newest line\nolder line", edited)
}
