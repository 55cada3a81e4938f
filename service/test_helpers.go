package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"yenbot/events"
)

// CapturingPublisher collects events published during a unit of work so tests
// can assert on them after the service call returns.
type CapturingPublisher struct {
	mu     sync.Mutex
	Events []events.Event
}

func (p *CapturingPublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, e)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	balanceRepo  BalanceRepository
	ticketRepo   TicketRepository
	boardRepo    BoardRepository
	contractRepo ContractRepository
	eventBus     *CapturingPublisher
}

// SetRepositories wires the mocked repositories into the unit of work
func (m *MockUnitOfWork) SetRepositories(balance BalanceRepository, ticket TicketRepository, board BoardRepository, contract ContractRepository) {
	m.balanceRepo = balance
	m.ticketRepo = ticket
	m.boardRepo = board
	m.contractRepo = contract
	m.eventBus = &CapturingPublisher{}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) BalanceRepository() BalanceRepository {
	return m.balanceRepo
}

func (m *MockUnitOfWork) TicketRepository() TicketRepository {
	return m.ticketRepo
}

func (m *MockUnitOfWork) BoardRepository() BoardRepository {
	return m.boardRepo
}

func (m *MockUnitOfWork) ContractRepository() ContractRepository {
	return m.contractRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// PublishedEvents returns the events captured during the unit of work
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	if m.eventBus == nil {
		return nil
	}
	m.eventBus.mu.Lock()
	defer m.eventBus.mu.Unlock()
	return append([]events.Event(nil), m.eventBus.Events...)
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

// nopScheduler ignores scheduled tasks; used where the timer is irrelevant
type nopScheduler struct{}

func (nopScheduler) Schedule(contractID int64, delay time.Duration, fn func()) {}
