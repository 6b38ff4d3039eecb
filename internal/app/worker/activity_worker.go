package worker

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"taskboard/internal/app/events"
	"taskboard/internal/domain/model"
)

const popTimeout = 5 * time.Second

type queueReader interface {
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

// ActivityWorker drains the task activity queue into the structured log.
type ActivityWorker struct {
	rdb        queueReader
	queueName  string
	logger     zerolog.Logger
	retryDelay time.Duration
}

func NewActivityWorker(rdb queueReader, queueName string, logger zerolog.Logger) *ActivityWorker {
	return &ActivityWorker{
		rdb:        rdb,
		queueName:  queueName,
		logger:     logger.With().Str("component", "activity_worker").Logger(),
		retryDelay: 5 * time.Second,
	}
}

// Start blocks until ctx is cancelled.
func (w *ActivityWorker) Start(ctx context.Context) {
	w.logger.Info().Str("queue", w.queueName).Msg("activity worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("activity worker stopping")
			return
		default:
		}

		result, err := w.rdb.BRPop(ctx, popTimeout, w.queueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// redis.Nil is an empty poll; context errors mean shutdown.
				continue
			}
			w.logger.Error().Err(err).Str("queue", w.queueName).Msg("failed to pop from activity queue")
			w.sleep(ctx)
			continue
		}

		// result is [queueName, value]
		if len(result) < 2 || result[1] == "" {
			w.logger.Warn().Msg("activity queue returned an empty payload")
			continue
		}
		w.handle(result[1])
	}
}

func (w *ActivityWorker) handle(payload string) (model.TaskEvent, bool) {
	event, err := events.Decode(payload)
	if err != nil {
		w.logger.Error().Err(err).Str("payload", payload).Msg("dropping malformed task event")
		return model.TaskEvent{}, false
	}

	w.logger.Info().
		Str("event", string(event.Type)).
		Str("code", event.Code).
		Str("actor", event.Actor).
		Time("occurred_at", event.OccurredAt).
		Msg("task activity")
	return event, true
}

func (w *ActivityWorker) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(w.retryDelay):
	}
}
