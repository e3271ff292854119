package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingService struct {
	started atomic.Bool
	stopped atomic.Bool
	block   chan struct{}
	err     error
}

func newRecordingService() *recordingService {
	return &recordingService{block: make(chan struct{})}
}

func (s *recordingService) Start() error {
	s.started.Store(true)
	if s.err != nil {
		return s.err
	}
	<-s.block
	return nil
}

func (s *recordingService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.block)
	}
}

func TestLifecycle_StopsOnContextCancel(t *testing.T) {
	l := NewLifecycle(zap.NewNop())
	svc := newRecordingService()
	l.Add("svc", svc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	// Give the service a moment to start, then cancel.
	require.Eventually(t, svc.started.Load, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("lifecycle did not shut down")
	}
	assert.True(t, svc.stopped.Load())
}

func TestLifecycle_ServiceErrorTriggersShutdown(t *testing.T) {
	l := NewLifecycle(zap.NewNop())

	healthy := newRecordingService()
	failing := newRecordingService()
	failing.err = errors.New("boom")

	l.Add("healthy", healthy)
	l.Add("failing", failing)

	err := l.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.True(t, healthy.stopped.Load(), "healthy service must be stopped after a sibling fails")
}
