package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContract_CounterParty(t *testing.T) {
	c := &Contract{InitiatorID: 100, OpponentID: 200}

	assert.Equal(t, int64(200), c.CounterParty(100))
	assert.Equal(t, int64(100), c.CounterParty(200))
	assert.Equal(t, int64(0), c.CounterParty(300))
}

func TestContract_CanBeAnsweredBy(t *testing.T) {
	c := &Contract{InitiatorID: 100, OpponentID: 200, Status: ContractStatusPending}

	assert.True(t, c.CanBeAnsweredBy(200))
	assert.False(t, c.CanBeAnsweredBy(100), "initiator cannot answer their own proposal")

	c.Status = ContractStatusAccepted
	assert.False(t, c.CanBeAnsweredBy(200))
}

func TestContract_IsTerminal(t *testing.T) {
	tests := []struct {
		status   ContractStatus
		terminal bool
	}{
		{ContractStatusPending, false},
		{ContractStatusAccepted, false},
		{ContractStatusDeclined, true},
		{ContractStatusClosed, true},
	}

	for _, tt := range tests {
		c := &Contract{Status: tt.status}
		assert.Equal(t, tt.terminal, c.IsTerminal(), "status %s", tt.status)
	}
}
