package rate

import (
	"context"
	"testing"
	"time"

	"tcmbrates/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func running(s *Scheduler) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func TestNewScheduler_Constructs(t *testing.T) {
	s := NewScheduler(new(MockSnapshotProvider), nil, time.Minute)
	require.NotNil(t, s)
	require.Nil(t, s.sched)
}

func TestScheduler_Shutdown_NoScheduler_ReturnsNil(t *testing.T) {
	s := NewScheduler(new(MockSnapshotProvider), nil, time.Minute)
	err := s.Shutdown()
	require.NoError(t, err)
	require.Nil(t, s.sched)
}

func TestScheduler_Start_RunsImmediately(t *testing.T) {
	provider := new(MockSnapshotProvider)
	ran := make(chan struct{}, 1)
	provider.On("Snapshot", mock.Anything).
		Return(usdTable(time.Now().Add(time.Hour)), nil).
		Run(func(mock.Arguments) {
			select {
			case ran <- struct{}{}:
			default:
			}
		})

	s := NewScheduler(provider, nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("expected refresh job to run right after start")
	}
	require.NoError(t, s.Shutdown())
}

func TestScheduler_Start_And_ContextCancel_ShutsDown(t *testing.T) {
	provider := new(MockSnapshotProvider)
	provider.On("Snapshot", mock.Anything).Return(domain.RateTable{}, domain.ErrConnectionFailed).Maybe()
	s := NewScheduler(provider, nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	// Start scheduler
	require.NoError(t, s.Start(ctx))
	require.True(t, running(s))

	// Cancel and ensure Shutdown is called by goroutine
	cancel()

	// Wait until s.sched becomes nil (Shutdown sets it to nil)
	require.Eventually(t, func() bool { return !running(s) }, 2*time.Second, 10*time.Millisecond,
		"expected scheduler to be shutdown after ctx cancel")
}

func TestNewScheduler_UsesProvidedInterval(t *testing.T) {
	s := NewScheduler(new(MockSnapshotProvider), nil, 42*time.Second)
	require.Equal(t, 42*time.Second, s.refreshInterval)
}

func TestNewScheduler_DefaultsIntervalWhenInvalid(t *testing.T) {
	s := NewScheduler(new(MockSnapshotProvider), nil, 0)
	require.Equal(t, 10*time.Minute, s.refreshInterval)
}
