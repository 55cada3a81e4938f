package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"yenbot/database"
	"yenbot/events"
	"yenbot/service"
)

// unitOfWork implements the service.UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	balanceRepo      service.BalanceRepository
	ticketRepo       service.TicketRepository
	boardRepo        service.BoardRepository
	contractRepo     service.ContractRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories bound to the transaction
	u.balanceRepo = newBalanceRepositoryWithTx(tx)
	u.ticketRepo = newTicketRepositoryWithTx(tx)
	u.boardRepo = newBoardRepositoryWithTx(tx)
	u.contractRepo = newContractRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Release staged events only after the commit succeeded
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard staged events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// BalanceRepository returns the balance repository for this unit of work
func (u *unitOfWork) BalanceRepository() service.BalanceRepository {
	if u.balanceRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.balanceRepo
}

// TicketRepository returns the ticket repository for this unit of work
func (u *unitOfWork) TicketRepository() service.TicketRepository {
	if u.ticketRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ticketRepo
}

// BoardRepository returns the board repository for this unit of work
func (u *unitOfWork) BoardRepository() service.BoardRepository {
	if u.boardRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.boardRepo
}

// ContractRepository returns the contract repository for this unit of work
func (u *unitOfWork) ContractRepository() service.ContractRepository {
	if u.contractRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.contractRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
