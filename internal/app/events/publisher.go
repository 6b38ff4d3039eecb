package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"taskboard/internal/domain/model"
)

// Publisher hands committed task mutations to the activity queue.
type Publisher interface {
	Publish(ctx context.Context, event model.TaskEvent) error
}

type RedisPublisher struct {
	rdb       redis.Cmdable
	queueName string
}

func NewRedisPublisher(rdb redis.Cmdable, queueName string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, queueName: queueName}
}

// Publish pushes the JSON-encoded event onto the head of the queue; the
// worker pops from the tail.
func (p *RedisPublisher) Publish(ctx context.Context, event model.TaskEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling task event: %w", err)
	}
	if err := p.rdb.LPush(ctx, p.queueName, payload).Err(); err != nil {
		return fmt.Errorf("pushing task event to %s: %w", p.queueName, err)
	}
	return nil
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.TaskEvent) error { return nil }

// Decode parses a payload written by RedisPublisher.
func Decode(payload string) (model.TaskEvent, error) {
	var event model.TaskEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return model.TaskEvent{}, fmt.Errorf("decoding task event: %w", err)
	}
	return event, nil
}
