package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestBus_EmitDispatchesToSubscribers(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var got []Event
	bus.Subscribe(EventTypeTicketChange, func(ctx context.Context, e Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	})

	bus.Emit(context.Background(), TicketChangeEvent{GuildID: 1, UserID: 2, Label: "coaching", NewCount: 3})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	})

	mu.Lock()
	defer mu.Unlock()
	ev, ok := got[0].(TicketChangeEvent)
	assert.True(t, ok)
	assert.Equal(t, int64(3), ev.NewCount)
}

func TestTransactionalBus_FlushAndDiscard(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe(EventTypeContractClosed, func(ctx context.Context, e Event) {
		mu.Lock()
		defer mu.Unlock()
		count++
	})

	// Discarded events never reach the bus
	txBus := NewTransactionalBus(bus)
	txBus.Publish(ContractClosedEvent{ContractID: 1})
	txBus.Discard()
	txBus.Flush(context.Background())

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, 0, count)
	mu.Unlock()

	// Flushed events do
	txBus.Publish(ContractClosedEvent{ContractID: 2})
	txBus.Flush(context.Background())

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	})
}
