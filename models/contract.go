package models

import (
	"time"
)

// ContractStatus represents the state of a contract
type ContractStatus string

const (
	ContractStatusPending  ContractStatus = "pending"
	ContractStatusAccepted ContractStatus = "accepted"
	ContractStatusDeclined ContractStatus = "declined"
	ContractStatusClosed   ContractStatus = "closed"
)

// ContractResult is the outcome declared by the submitting party
type ContractResult string

const (
	ContractResultWin  ContractResult = "win"
	ContractResultLose ContractResult = "lose"
)

// Contract represents a bilateral agreement between two users
type Contract struct {
	ID          int64          `db:"id"`
	GuildID     int64          `db:"guild_id"`
	InitiatorID int64          `db:"initiator_id"`
	OpponentID  int64          `db:"opponent_id"`
	Content     string         `db:"content"`
	Status      ContractStatus `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	AcceptedAt  *time.Time     `db:"accepted_at"`
}

// IsParticipant checks if a user is involved in the contract
func (c *Contract) IsParticipant(userID int64) bool {
	return c.InitiatorID == userID || c.OpponentID == userID
}

// CounterParty returns the other participant's ID for a given participant
func (c *Contract) CounterParty(userID int64) int64 {
	if c.InitiatorID == userID {
		return c.OpponentID
	}
	if c.OpponentID == userID {
		return c.InitiatorID
	}
	return 0 // Not a participant
}

// CanBeAnsweredBy checks if the contract is still pending and the given user
// is the opponent named in the proposal
func (c *Contract) CanBeAnsweredBy(userID int64) bool {
	return c.Status == ContractStatusPending && c.OpponentID == userID
}

// IsTerminal checks if the contract has reached a final state
func (c *Contract) IsTerminal() bool {
	return c.Status == ContractStatusDeclined || c.Status == ContractStatusClosed
}
