package service

import (
	"context"
	"time"

	"yenbot/events"
	"yenbot/models"
)

// BalanceRepository defines the interface for balance data access
type BalanceRepository interface {
	// GetOrCreate retrieves a user's balance row, creating it at zero if absent
	GetOrCreate(ctx context.Context, guildID, userID int64) (*models.Balance, error)

	// Add applies a signed delta unconditionally and returns the new balance
	Add(ctx context.Context, guildID, userID int64, delta int64) (int64, error)

	// Deduct subtracts amount atomically, failing with ErrInsufficientFunds
	// when the current balance is below amount
	Deduct(ctx context.Context, guildID, userID int64, amount int64) error
}

// TicketRepository defines the interface for ticket count data access
type TicketRepository interface {
	// GetCount returns the ticket count for a label, 0 if no row exists
	GetCount(ctx context.Context, guildID, userID int64, label string) (int64, error)

	// Add increments the count by n, creating the row if absent; returns the new count
	Add(ctx context.Context, guildID, userID int64, label string, n int64) (int64, error)

	// Set sets the count to an explicit non-negative value; returns the new count
	Set(ctx context.Context, guildID, userID int64, label string, count int64) (int64, error)

	// ListByGuild returns all non-zero holdings for a guild ordered by user then label
	ListByGuild(ctx context.Context, guildID int64) ([]*models.Ticket, error)
}

// BoardRepository defines the interface for board message pointer data access
type BoardRepository interface {
	// Get retrieves the board record for a (guild, channel, kind), nil if absent
	Get(ctx context.Context, guildID, channelID int64, kind models.BoardKind) (*models.Board, error)

	// Upsert inserts or replaces the board record
	Upsert(ctx context.Context, board *models.Board) error
}

// ContractRepository defines the interface for contract data access
type ContractRepository interface {
	// Create inserts a new contract and fills its ID and CreatedAt
	Create(ctx context.Context, contract *models.Contract) error

	// GetByID retrieves a contract by its ID, nil if absent
	GetByID(ctx context.Context, id int64) (*models.Contract, error)

	// Update persists the contract's status and accepted_at
	Update(ctx context.Context, contract *models.Contract) error

	// DeclineIfPending atomically declines the contract only if it is still
	// pending; reports whether a row was changed
	DeclineIfPending(ctx context.Context, id int64) (bool, error)

	// GetLatestAcceptedBetween returns the most recent accepted contract
	// between two users in either direction, nil if none exists
	GetLatestAcceptedBetween(ctx context.Context, guildID, userA, userB int64) (*models.Contract, error)
}

// LedgerService defines the interface for balance and ticket queries
type LedgerService interface {
	// GetBalance returns a user's balance, lazily creating the row at zero
	GetBalance(ctx context.Context, guildID, userID int64) (int64, error)

	// GetTicketCount returns a user's ticket count for a label, 0 if absent
	GetTicketCount(ctx context.Context, guildID, userID int64, label string) (int64, error)

	// ListGuildTickets returns all non-zero ticket holdings for a guild
	ListGuildTickets(ctx context.Context, guildID int64) ([]*models.Ticket, error)
}

// TransferService defines the interface for balance and ticket mutations
type TransferService interface {
	// Transfer moves amount from one user to another as a single atomic unit
	Transfer(ctx context.Context, guildID, fromUserID, toUserID int64, amount int64) (*models.TransferResult, error)

	// Adjust applies a signed administrative delta; the balance may go
	// negative through this path. Returns the new balance.
	Adjust(ctx context.Context, guildID, userID int64, delta int64) (int64, error)

	// PurchaseTicket debits price and grants one ticket of the label
	// atomically; returns the new ticket count
	PurchaseTicket(ctx context.Context, guildID, userID int64, label string, price int64) (int64, error)

	// GrantTicket increments the ticket count by n; returns the new count
	GrantTicket(ctx context.Context, guildID, userID int64, label string, n int64) (int64, error)

	// DecreaseTickets lowers a user's ticket count by dec, floored at zero
	DecreaseTickets(ctx context.Context, guildID, userID int64, label string, dec int64) (*models.TicketAdjustResult, error)
}

// ContractService defines the interface for contract lifecycle operations
type ContractService interface {
	// Propose creates a new pending contract and schedules its timeout decline
	Propose(ctx context.Context, guildID, initiatorID, opponentID int64, content string) (*models.Contract, error)

	// Respond handles the named opponent accepting or declining a pending contract
	Respond(ctx context.Context, contractID, responderID int64, accept bool) (*models.Contract, error)

	// ExpirePending declines the contract if it is still pending; a no-op
	// when the contract already left the pending state
	ExpirePending(ctx context.Context, contractID int64) error

	// SubmitResult locates the most recent accepted contract between the
	// submitter and the named opponent
	SubmitResult(ctx context.Context, guildID, submitterID, opponentID int64) (*models.Contract, error)

	// ApproveResult closes an accepted contract after the submitter's
	// counter-party approves the declared result
	ApproveResult(ctx context.Context, contractID, approverID, submitterID int64, result models.ContractResult) (*models.Contract, error)
}

// BoardService defines the interface for the auto-updating board projection
type BoardService interface {
	// EnsureBoard returns the live board record for a guild and kind,
	// creating or recreating the external message as needed. Returns nil
	// when no channel is configured for the kind.
	EnsureBoard(ctx context.Context, guildID int64, kind models.BoardKind) (*models.Board, error)

	// RefreshTicketBoard rewrites the ticket board from current ticket state
	RefreshTicketBoard(ctx context.Context, guildID int64) error

	// AppendResult prepends a result line to the result board, newest first
	AppendResult(ctx context.Context, guildID int64, line string) error
}

// Messenger is the messaging collaborator the board projection writes through
type Messenger interface {
	// SendMessage posts a new message and returns its ID
	SendMessage(channelID int64, content string) (int64, error)

	// EditMessage replaces a message's content, ErrMessageNotFound if deleted
	EditMessage(channelID, messageID int64, content string) error

	// FetchMessage returns a message's content, ErrMessageNotFound if deleted
	FetchMessage(channelID, messageID int64) (string, error)
}

// Scheduler defines the interface for deferred fire-and-check tasks keyed by
// contract id. There is no cancellation API: a state transition before expiry
// simply makes the fired check a no-op.
type Scheduler interface {
	Schedule(contractID int64, delay time.Duration, fn func())
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	BalanceRepository() BalanceRepository
	TicketRepository() TicketRepository
	BoardRepository() BoardRepository
	ContractRepository() ContractRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
