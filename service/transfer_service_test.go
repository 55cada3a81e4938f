package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"yenbot/events"
	"yenbot/models"
)

const testGuildID = int64(555000111)

func newTransferFixture() (*MockUnitOfWorkFactory, *MockUnitOfWork, *MockBalanceRepository, *MockTicketRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBalanceRepo := new(MockBalanceRepository)
	mockTicketRepo := new(MockTicketRepository)

	mockUoW.SetRepositories(mockBalanceRepo, mockTicketRepo, new(MockBoardRepository), new(MockContractRepository))
	mockFactory.On("Create").Return(mockUoW)

	return mockFactory, mockUoW, mockBalanceRepo, mockTicketRepo
}

func TestTransferService_Transfer_Success(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockBalanceRepo, _ := newTransferFixture()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	sender := &models.Balance{GuildID: testGuildID, UserID: 100, Balance: 100}
	mockBalanceRepo.On("GetOrCreate", ctx, testGuildID, int64(100)).Return(sender, nil)
	mockBalanceRepo.On("Deduct", ctx, testGuildID, int64(100), int64(60)).Return(nil)
	mockBalanceRepo.On("Add", ctx, testGuildID, int64(200), int64(60)).Return(int64(60), nil)

	service := NewTransferService(mockFactory, 10_000_000)
	result, err := service.Transfer(ctx, testGuildID, 100, 200, 60)

	assert.NoError(t, err)
	assert.Equal(t, int64(60), result.Amount)
	assert.Equal(t, int64(40), result.SenderBalance)

	mockBalanceRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestTransferService_Transfer_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockBalanceRepo, _ := newTransferFixture()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	sender := &models.Balance{GuildID: testGuildID, UserID: 100, Balance: 100}
	mockBalanceRepo.On("GetOrCreate", ctx, testGuildID, int64(100)).Return(sender, nil)

	service := NewTransferService(mockFactory, 10_000_000)
	result, err := service.Transfer(ctx, testGuildID, 100, 200, 150)

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Nil(t, result)

	// No debit or credit was attempted and nothing was committed
	mockBalanceRepo.AssertNotCalled(t, "Deduct", ctx, testGuildID, int64(100), int64(150))
	mockBalanceRepo.AssertNotCalled(t, "Add", ctx, testGuildID, int64(200), int64(150))
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestTransferService_Transfer_SelfTransfer(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, _, _ := newTransferFixture()

	service := NewTransferService(mockFactory, 10_000_000)
	result, err := service.Transfer(ctx, testGuildID, 100, 100, 50)

	assert.ErrorIs(t, err, ErrInvalidTarget)
	assert.Nil(t, result)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestTransferService_Transfer_ExceedsCap(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, _, _ := newTransferFixture()

	service := NewTransferService(mockFactory, 10_000_000)
	result, err := service.Transfer(ctx, testGuildID, 100, 200, 10_000_001)

	assert.Error(t, err)
	assert.Nil(t, result)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestTransferService_Transfer_NonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	mockFactory, _, _, _ := newTransferFixture()

	service := NewTransferService(mockFactory, 10_000_000)

	for _, amount := range []int64{0, -5} {
		result, err := service.Transfer(ctx, testGuildID, 100, 200, amount)
		assert.Error(t, err)
		assert.Nil(t, result)
	}
	mockFactory.AssertNotCalled(t, "Create")
}

func TestTransferService_Adjust_MayGoNegative(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockBalanceRepo, _ := newTransferFixture()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// The administrative path applies the delta unconditionally
	mockBalanceRepo.On("Add", ctx, testGuildID, int64(100), int64(-500)).Return(int64(-400), nil)

	service := NewTransferService(mockFactory, 10_000_000)
	newBalance, err := service.Adjust(ctx, testGuildID, 100, -500)

	assert.NoError(t, err)
	assert.Equal(t, int64(-400), newBalance)
	mockBalanceRepo.AssertExpectations(t)
}

func TestTransferService_PurchaseTicket_Success(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockBalanceRepo, mockTicketRepo := newTransferFixture()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	buyer := &models.Balance{GuildID: testGuildID, UserID: 100, Balance: 5000}
	mockBalanceRepo.On("GetOrCreate", ctx, testGuildID, int64(100)).Return(buyer, nil)
	mockBalanceRepo.On("Deduct", ctx, testGuildID, int64(100), int64(1500)).Return(nil)
	mockTicketRepo.On("Add", ctx, testGuildID, int64(100), "coaching", int64(1)).Return(int64(3), nil)

	service := NewTransferService(mockFactory, 10_000_000)
	count, err := service.PurchaseTicket(ctx, testGuildID, 100, "coaching", 1500)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	published := mockUoW.PublishedEvents()
	if assert.Len(t, published, 1) {
		ev, ok := published[0].(events.TicketChangeEvent)
		assert.True(t, ok)
		assert.Equal(t, "coaching", ev.Label)
		assert.Equal(t, int64(3), ev.NewCount)
	}
}

func TestTransferService_PurchaseTicket_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, mockBalanceRepo, mockTicketRepo := newTransferFixture()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	buyer := &models.Balance{GuildID: testGuildID, UserID: 100, Balance: 100}
	mockBalanceRepo.On("GetOrCreate", ctx, testGuildID, int64(100)).Return(buyer, nil)

	service := NewTransferService(mockFactory, 10_000_000)
	count, err := service.PurchaseTicket(ctx, testGuildID, 100, "coaching", 1500)

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Zero(t, count)
	mockTicketRepo.AssertNotCalled(t, "Add", ctx, testGuildID, int64(100), "coaching", int64(1))
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestTransferService_DecreaseTickets_FlooredAtZero(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, mockTicketRepo := newTransferFixture()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTicketRepo.On("GetCount", ctx, testGuildID, int64(100), "coaching").Return(int64(5), nil)
	mockTicketRepo.On("Set", ctx, testGuildID, int64(100), "coaching", int64(0)).Return(int64(0), nil)

	service := NewTransferService(mockFactory, 10_000_000)
	result, err := service.DecreaseTickets(ctx, testGuildID, 100, "coaching", 8)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), result.Before)
	assert.Equal(t, int64(0), result.After)
	mockTicketRepo.AssertExpectations(t)
}

func TestTransferService_DecreaseTickets_Partial(t *testing.T) {
	ctx := context.Background()
	mockFactory, mockUoW, _, mockTicketRepo := newTransferFixture()

	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockTicketRepo.On("GetCount", ctx, testGuildID, int64(100), "coaching").Return(int64(5), nil)
	mockTicketRepo.On("Set", ctx, testGuildID, int64(100), "coaching", int64(2)).Return(int64(2), nil)

	service := NewTransferService(mockFactory, 10_000_000)
	result, err := service.DecreaseTickets(ctx, testGuildID, 100, "coaching", 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.After)
}
