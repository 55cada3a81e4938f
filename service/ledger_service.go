package service

import (
	"context"
	"fmt"

	"yenbot/models"
)

type ledgerService struct {
	uowFactory UnitOfWorkFactory
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
	}
}

// GetBalance returns a user's balance, lazily creating the row at zero.
// No business validation happens here; that is the mutating callers' job.
func (s *ledgerService) GetBalance(ctx context.Context, guildID, userID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	balance, err := uow.BalanceRepository().GetOrCreate(ctx, guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return balance.Balance, nil
}

// GetTicketCount returns a user's ticket count for a label, 0 if absent
func (s *ledgerService) GetTicketCount(ctx context.Context, guildID, userID int64, label string) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	count, err := uow.TicketRepository().GetCount(ctx, guildID, userID, label)
	if err != nil {
		return 0, fmt.Errorf("failed to get ticket count: %w", err)
	}

	return count, nil
}

// ListGuildTickets returns all non-zero ticket holdings for a guild
func (s *ledgerService) ListGuildTickets(ctx context.Context, guildID int64) ([]*models.Ticket, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tickets, err := uow.TicketRepository().ListByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return tickets, nil
}
