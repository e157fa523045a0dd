package server

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// blockingService runs until Stop, or returns startErr immediately.
type blockingService struct {
	started  atomic.Bool
	stopped  atomic.Bool
	startErr error
	done     chan struct{}
	once     sync.Once
}

func newBlockingService() *blockingService {
	return &blockingService{done: make(chan struct{})}
}

func (b *blockingService) Start() error {
	b.started.Store(true)
	if b.startErr != nil {
		return b.startErr
	}
	<-b.done
	return nil
}

func (b *blockingService) Stop() {
	b.stopped.Store(true)
	b.once.Do(func() { close(b.done) })
}

func TestLifecycleStopsRollServerServicesInReverseOrder(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	lc := NewLifecycle(zap.New(core), time.Second)

	ledger := newBlockingService()
	grpcSvc := newBlockingService()
	lc.Add("postgres", ledger)
	lc.Add("grpc", grpcSvc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()

	require.Eventually(t, func() bool {
		return ledger.started.Load() && grpcSvc.started.Load()
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}

	assert.True(t, ledger.stopped.Load())
	assert.True(t, grpcSvc.stopped.Load())

	var order []string
	for _, e := range logs.FilterMessage("stopping service").All() {
		order = append(order, e.ContextMap()["service"].(string))
	}
	assert.Equal(t, []string{"grpc", "postgres"}, order)
}

func TestFuncServiceCancelsWatcherOnStop(t *testing.T) {
	watchCtx, stopWatch := context.WithCancel(context.Background())
	svc := &FuncService{
		StartFn: func() error {
			<-watchCtx.Done()
			return nil
		},
		StopFn: stopWatch,
	}

	result := make(chan error, 1)
	go func() { result <- svc.Start() }()
	svc.Stop()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestLifecycleReturnsFirstServiceFailure(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t), time.Second)
	boom := errors.New("listen: address in use")
	failing := newBlockingService()
	failing.startErr = boom
	healthy := newBlockingService()
	lc.Add("postgres", healthy)
	lc.Add("grpc", failing)

	done := make(chan error, 1)
	go func() { done <- lc.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "service grpc")
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down after service failure")
	}
	assert.True(t, healthy.stopped.Load())
}

type stuckService struct{ release chan struct{} }

func (s *stuckService) Start() error { <-s.release; return nil }
func (s *stuckService) Stop()        { <-s.release }

func TestLifecycleStopTimeoutAbandonsStuckService(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	lc := NewLifecycle(zap.New(core), 50*time.Millisecond)
	stuck := &stuckService{release: make(chan struct{})}
	defer close(stuck.release)
	lc.Add("stuck", stuck)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("stop timeout was not honoured")
	}
	assert.Equal(t, 1, logs.FilterMessage("service did not stop in time").Len())
}
