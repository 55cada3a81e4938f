package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgreementScheduler_FiresAfterDelay(t *testing.T) {
	s := NewAgreementScheduler()
	defer s.Stop()

	var fired atomic.Int32
	s.Schedule(1, 10*time.Millisecond, func() { fired.Add(1) })

	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, s.Pending())
}

func TestAgreementScheduler_ScheduleReplacesExisting(t *testing.T) {
	s := NewAgreementScheduler()
	defer s.Stop()

	var first, second atomic.Int32
	s.Schedule(1, 10*time.Millisecond, func() { first.Add(1) })
	s.Schedule(1, 20*time.Millisecond, func() { second.Add(1) })

	assert.Equal(t, 1, s.Pending())
	assert.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), first.Load(), "replaced timer must not fire")
}

func TestAgreementScheduler_StopCancelsOutstanding(t *testing.T) {
	s := NewAgreementScheduler()

	var fired atomic.Int32
	s.Schedule(1, 50*time.Millisecond, func() { fired.Add(1) })
	s.Schedule(2, 50*time.Millisecond, func() { fired.Add(1) })
	assert.Equal(t, 2, s.Pending())

	s.Stop()
	assert.Equal(t, 0, s.Pending())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestAgreementScheduler_DropsAfterStop(t *testing.T) {
	s := NewAgreementScheduler()
	s.Stop()

	var fired atomic.Int32
	s.Schedule(1, time.Millisecond, func() { fired.Add(1) })
	assert.Equal(t, 0, s.Pending())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
