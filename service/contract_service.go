package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"yenbot/events"
	"yenbot/models"
)

type contractService struct {
	uowFactory UnitOfWorkFactory
	scheduler  Scheduler
	timeout    time.Duration
}

// NewContractService creates a new contract service. timeout is how long a
// proposal stays pending before the scheduler declines it.
func NewContractService(uowFactory UnitOfWorkFactory, scheduler Scheduler, timeout time.Duration) ContractService {
	return &contractService{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		timeout:    timeout,
	}
}

// Propose creates a new pending contract and schedules its timeout decline
func (s *contractService) Propose(ctx context.Context, guildID, initiatorID, opponentID int64, content string) (*models.Contract, error) {
	if initiatorID == opponentID {
		return nil, fmt.Errorf("%w: cannot propose a contract to yourself", ErrInvalidTarget)
	}
	if content == "" {
		return nil, fmt.Errorf("contract content cannot be empty")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	contract := &models.Contract{
		GuildID:     guildID,
		InitiatorID: initiatorID,
		OpponentID:  opponentID,
		Content:     content,
		Status:      models.ContractStatusPending,
	}

	if err := uow.ContractRepository().Create(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Fire-and-check: if the contract leaves pending before the timer fires,
	// the conditional decline is a no-op
	contractID := contract.ID
	s.scheduler.Schedule(contractID, s.timeout, func() {
		if err := s.ExpirePending(context.Background(), contractID); err != nil {
			log.Errorf("Failed to expire contract %d: %v", contractID, err)
		}
	})

	return contract, nil
}

// Respond handles the named opponent accepting or declining a pending contract
func (s *contractService) Respond(ctx context.Context, contractID, responderID int64, accept bool) (*models.Contract, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	contract, err := uow.ContractRepository().GetByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	if contract == nil {
		return nil, ErrContractNotFound
	}

	if contract.OpponentID != responderID {
		return nil, fmt.Errorf("%w: only the named opponent can respond", ErrUnauthorized)
	}
	if contract.Status != models.ContractStatusPending {
		return nil, ErrContractNotPending
	}

	if accept {
		now := time.Now()
		contract.Status = models.ContractStatusAccepted
		contract.AcceptedAt = &now
	} else {
		contract.Status = models.ContractStatusDeclined
	}

	if err := uow.ContractRepository().Update(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return contract, nil
}

// ExpirePending declines the contract if it is still pending. The status
// check and the update are one conditional statement, so a concurrent accept
// cannot be clobbered.
func (s *contractService) ExpirePending(ctx context.Context, contractID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	declined, err := uow.ContractRepository().DeclineIfPending(ctx, contractID)
	if err != nil {
		return fmt.Errorf("failed to decline contract: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if declined {
		log.Infof("Contract %d declined on timeout", contractID)
	}
	return nil
}

// SubmitResult locates the most recent accepted contract between the
// submitter and the named opponent. The lookup is deliberately keyed by the
// user pair rather than a contract id, matching the command surface.
func (s *contractService) SubmitResult(ctx context.Context, guildID, submitterID, opponentID int64) (*models.Contract, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	contract, err := uow.ContractRepository().GetLatestAcceptedBetween(ctx, guildID, submitterID, opponentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up accepted contract: %w", err)
	}
	if contract == nil {
		return nil, ErrNoAcceptedContract
	}

	return contract, nil
}

// ApproveResult closes an accepted contract after the submitter's
// counter-party approves the declared result. Emits a ContractClosedEvent on
// commit, which drives the result board append.
func (s *contractService) ApproveResult(ctx context.Context, contractID, approverID, submitterID int64, result models.ContractResult) (*models.Contract, error) {
	if result != models.ContractResultWin && result != models.ContractResultLose {
		return nil, fmt.Errorf("invalid result %q", result)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	contract, err := uow.ContractRepository().GetByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	if contract == nil {
		return nil, ErrContractNotFound
	}

	// A second approval after close lands here: the state is terminal
	if contract.Status != models.ContractStatusAccepted {
		return nil, ErrContractNotAccepted
	}

	if !contract.IsParticipant(submitterID) {
		return nil, fmt.Errorf("%w: submitter is not a party to this contract", ErrUnauthorized)
	}
	if contract.CounterParty(submitterID) != approverID {
		return nil, fmt.Errorf("%w: only the submitter's counter-party can approve", ErrUnauthorized)
	}

	contract.Status = models.ContractStatusClosed
	if err := uow.ContractRepository().Update(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to close contract: %w", err)
	}

	uow.EventBus().Publish(events.ContractClosedEvent{
		GuildID:     contract.GuildID,
		ContractID:  contract.ID,
		SubmitterID: submitterID,
		OpponentID:  approverID,
		Result:      result,
		Content:     contract.Content,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return contract, nil
}
