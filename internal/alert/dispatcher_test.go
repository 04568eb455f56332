package alert

import (
	"context"
	"errors"
	"sync"
	"testing"

	"riskwatch/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	name   string
	got    []model.Alert
	err    error
	panics bool
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Deliver(_ context.Context, a model.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, a)
	if s.panics {
		panic("sink down")
	}
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.got)
}

func TestDispatcherFansOut(t *testing.T) {
	failing := &recordingSink{name: "failing", err: errors.New("nope")}
	panicking := &recordingSink{name: "panicking", panics: true}
	ok := &recordingSink{name: "ok"}

	d := NewDispatcher(8, failing, panicking, ok, LogSink{})
	for i := 0; i < 3; i++ {
		require.NoError(t, d.Notify(context.Background(), model.Alert{ID: "a", Message: "m"}))
	}
	d.Close()

	assert.Equal(t, 3, failing.count())
	assert.Equal(t, 3, panicking.count())
	assert.Equal(t, 3, ok.count())
}

func TestDispatcherQueueFull(t *testing.T) {
	block := make(chan struct{})
	slow := &blockingSink{release: block, started: make(chan struct{})}
	d := NewDispatcher(1, slow)

	// first alert is picked up by the worker and blocks, second fills the queue
	require.NoError(t, d.Notify(context.Background(), model.Alert{ID: "1"}))
	<-slow.started
	require.NoError(t, d.Notify(context.Background(), model.Alert{ID: "2"}))
	assert.ErrorIs(t, d.Notify(context.Background(), model.Alert{ID: "3"}), ErrQueueFull)

	close(block)
	d.Close()
	assert.ErrorIs(t, d.Notify(context.Background(), model.Alert{ID: "4"}), ErrClosed)
}

type blockingSink struct {
	release chan struct{}
	started chan struct{}
	once    sync.Once
}

func (s *blockingSink) Name() string { return "blocking" }

func (s *blockingSink) Deliver(context.Context, model.Alert) error {
	s.once.Do(func() { close(s.started) })
	<-s.release
	return nil
}
