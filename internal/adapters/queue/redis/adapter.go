// Package redis relays batch progress between portal instances over redis
// pub/sub.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"bioportal/internal/core/domain"
)

const ProgressChannel = "portal:progress"

type ProgressRelay struct {
	client *redis.Client
}

func NewProgressRelay(client *redis.Client) *ProgressRelay {
	return &ProgressRelay{client: client}
}

func (r *ProgressRelay) PublishProgress(ctx context.Context, event domain.ProgressEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, ProgressChannel, data).Err()
}

// Subscribe streams progress events until ctx is done. An empty batchID
// receives every batch.
func (r *ProgressRelay) Subscribe(ctx context.Context, batchID string) (<-chan domain.ProgressEvent, error) {
	pubsub := r.client.Subscribe(ctx, ProgressChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", ProgressChannel, err)
	}

	ch := make(chan domain.ProgressEvent, 16)
	go func() {
		defer pubsub.Close()
		defer close(ch)

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var event domain.ProgressEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				if batchID != "" && event.BatchID != batchID {
					continue
				}
				select {
				case ch <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}
