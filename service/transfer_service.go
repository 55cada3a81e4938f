package service

import (
	"context"
	"fmt"

	"yenbot/events"
	"yenbot/models"
)

type transferService struct {
	uowFactory  UnitOfWorkFactory
	maxTransfer int64
}

// NewTransferService creates a new transfer service. maxTransfer caps the
// amount of a single transfer; 0 disables the cap.
func NewTransferService(uowFactory UnitOfWorkFactory, maxTransfer int64) TransferService {
	return &transferService{
		uowFactory:  uowFactory,
		maxTransfer: maxTransfer,
	}
}

// Transfer moves amount from one user to another. The debit and the credit
// commit together in one transaction; on any failure nothing is retained.
func (s *transferService) Transfer(ctx context.Context, guildID, fromUserID, toUserID int64, amount int64) (*models.TransferResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("transfer amount must be positive")
	}
	if s.maxTransfer > 0 && amount > s.maxTransfer {
		return nil, fmt.Errorf("transfer amount exceeds the limit of %d", s.maxTransfer)
	}
	if fromUserID == toUserID {
		return nil, fmt.Errorf("%w: cannot transfer to yourself", ErrInvalidTarget)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	// Surface a friendly rejection before attempting the conditional debit
	sender, err := uow.BalanceRepository().GetOrCreate(ctx, guildID, fromUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender balance: %w", err)
	}
	if sender.Balance < amount {
		return nil, ErrInsufficientFunds
	}

	// The deduct re-checks the balance inside the UPDATE, so a concurrent
	// transfer from the same sender cannot slip past the check above
	if err := uow.BalanceRepository().Deduct(ctx, guildID, fromUserID, amount); err != nil {
		return nil, err
	}

	if _, err := uow.BalanceRepository().Add(ctx, guildID, toUserID, amount); err != nil {
		return nil, fmt.Errorf("failed to credit recipient: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.TransferResult{
		Amount:        amount,
		SenderBalance: sender.Balance - amount,
	}, nil
}

// Adjust applies a signed administrative delta with no bounds check; the
// balance may go negative through this path. Returns the new balance.
func (s *transferService) Adjust(ctx context.Context, guildID, userID int64, delta int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	newBalance, err := uow.BalanceRepository().Add(ctx, guildID, userID, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to adjust balance: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return newBalance, nil
}

// PurchaseTicket debits price and grants one ticket of the label as a single
// atomic unit. Returns the new ticket count.
func (s *transferService) PurchaseTicket(ctx context.Context, guildID, userID int64, label string, price int64) (int64, error) {
	if price <= 0 {
		return 0, fmt.Errorf("ticket price must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	buyer, err := uow.BalanceRepository().GetOrCreate(ctx, guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get buyer balance: %w", err)
	}
	if buyer.Balance < price {
		return 0, ErrInsufficientFunds
	}

	if err := uow.BalanceRepository().Deduct(ctx, guildID, userID, price); err != nil {
		return 0, err
	}

	count, err := uow.TicketRepository().Add(ctx, guildID, userID, label, 1)
	if err != nil {
		return 0, fmt.Errorf("failed to grant ticket: %w", err)
	}

	uow.EventBus().Publish(events.TicketChangeEvent{
		GuildID:  guildID,
		UserID:   userID,
		Label:    label,
		NewCount: count,
	})

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return count, nil
}

// GrantTicket increments the ticket count by n; returns the new count
func (s *transferService) GrantTicket(ctx context.Context, guildID, userID int64, label string, n int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	count, err := uow.TicketRepository().Add(ctx, guildID, userID, label, n)
	if err != nil {
		return 0, fmt.Errorf("failed to grant tickets: %w", err)
	}

	uow.EventBus().Publish(events.TicketChangeEvent{
		GuildID:  guildID,
		UserID:   userID,
		Label:    label,
		NewCount: count,
	})

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return count, nil
}

// DecreaseTickets lowers a user's ticket count by dec, floored at zero
func (s *transferService) DecreaseTickets(ctx context.Context, guildID, userID int64, label string, dec int64) (*models.TicketAdjustResult, error) {
	if dec <= 0 {
		return nil, fmt.Errorf("decrease count must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	current, err := uow.TicketRepository().GetCount(ctx, guildID, userID, label)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket count: %w", err)
	}

	newCount := current - dec
	if newCount < 0 {
		newCount = 0
	}

	if _, err := uow.TicketRepository().Set(ctx, guildID, userID, label, newCount); err != nil {
		return nil, fmt.Errorf("failed to set ticket count: %w", err)
	}

	uow.EventBus().Publish(events.TicketChangeEvent{
		GuildID:  guildID,
		UserID:   userID,
		Label:    label,
		NewCount: newCount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.TicketAdjustResult{
		Label:  label,
		Before: current,
		After:  newCount,
	}, nil
}
