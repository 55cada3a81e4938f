package service

import "errors"

// Sentinel errors returned by service operations. Handlers discriminate with
// errors.Is to choose a user-facing rejection; all of them leave persisted
// state untouched.
var (
	// ErrInsufficientFunds is returned when a debit exceeds the payer's balance
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnauthorized is returned when the actor is not permitted to perform
	// the requested transition or operation
	ErrUnauthorized = errors.New("not authorized for this operation")

	// ErrInvalidTarget is returned for self-transfers, bot targets, and
	// malformed adjustment deltas
	ErrInvalidTarget = errors.New("invalid target")

	// ErrNoAcceptedContract is returned when a result submission finds no
	// accepted contract between the two users
	ErrNoAcceptedContract = errors.New("no accepted contract found")

	// ErrContractNotFound is returned when a contract id does not resolve
	ErrContractNotFound = errors.New("contract not found")

	// ErrContractNotPending is returned when accept/decline is attempted on a
	// contract that already left the pending state
	ErrContractNotPending = errors.New("contract is not pending")

	// ErrContractNotAccepted is returned when a close is attempted on a
	// contract that is not in the accepted state (including a second approval
	// after the contract is already closed)
	ErrContractNotAccepted = errors.New("contract is not accepted")

	// ErrMessageNotFound is reported by the messaging collaborator when a
	// board message was deleted externally; the projection self-heals
	ErrMessageNotFound = errors.New("message not found")
)
