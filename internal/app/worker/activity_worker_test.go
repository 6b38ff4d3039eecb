package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain/model"
)

type popResult struct {
	val []string
	err error
}

// scriptedQueue replays results and cancels the worker once they run out.
type scriptedQueue struct {
	mu      sync.Mutex
	results []popResult
	cancel  context.CancelFunc
	keys    []string
}

func (q *scriptedQueue) BRPop(ctx context.Context, _ time.Duration, keys ...string) *redis.StringSliceCmd {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.keys = keys

	if len(q.results) == 0 {
		q.cancel()
		return redis.NewStringSliceResult(nil, context.Canceled)
	}
	next := q.results[0]
	q.results = q.results[1:]
	return redis.NewStringSliceResult(next.val, next.err)
}

func TestActivityWorkerLogsEvents(t *testing.T) {
	event := model.TaskEvent{
		Type:       model.TaskCreated,
		Code:       "ABC123",
		Actor:      "admin",
		OccurredAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := &scriptedQueue{
		cancel: cancel,
		results: []popResult{
			{err: redis.Nil},
			{val: []string{"activity", string(payload)}},
			{val: []string{"activity", "{broken"}},
			{err: errors.New("connection reset")},
			{val: []string{"activity"}},
		},
	}

	var buf bytes.Buffer
	w := NewActivityWorker(queue, "activity", zerolog.New(&buf))
	w.retryDelay = time.Millisecond

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}

	out := buf.String()
	assert.Equal(t, []string{"activity"}, queue.keys)
	assert.Contains(t, out, `"message":"task activity"`)
	assert.Contains(t, out, `"code":"ABC123"`)
	assert.Contains(t, out, `"message":"dropping malformed task event"`)
	assert.Contains(t, out, `"message":"failed to pop from activity queue"`)
	assert.Contains(t, out, `"message":"activity queue returned an empty payload"`)
	assert.Contains(t, out, `"message":"activity worker stopping"`)
}

func TestActivityWorkerHandle(t *testing.T) {
	w := NewActivityWorker(nil, "activity", zerolog.Nop())

	event, ok := w.handle(`{"type":"deleted","code":"DEL001","actor":"web","occurred_at":"2024-03-01T09:30:00Z"}`)
	require.True(t, ok)
	assert.Equal(t, model.TaskDeleted, event.Type)
	assert.Equal(t, "DEL001", event.Code)

	_, ok = w.handle("nope")
	assert.False(t, ok)
}
