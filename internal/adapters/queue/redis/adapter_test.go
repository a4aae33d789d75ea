package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"bioportal/internal/core/domain"
)

func TestProgressRelay_FiltersByBatch(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	relay := NewProgressRelay(client)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := relay.Subscribe(ctx, "b2")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	for _, ev := range []domain.ProgressEvent{
		domain.NewProgressEvent("b1", domain.ToolRFdiffusion3, domain.Progress{Completed: 1, Total: 2}),
		domain.NewProgressEvent("b2", domain.ToolRFdiffusion3, domain.Progress{Completed: 1, Total: 2}),
	} {
		if err := relay.PublishProgress(ctx, ev); err != nil {
			t.Fatalf("PublishProgress: %v", err)
		}
	}

	select {
	case ev := <-events:
		if ev.BatchID != "b2" || ev.Completed != 1 || ev.Total != 2 {
			t.Errorf("unexpected event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for progress event")
	}

	cancel()
	select {
	case _, ok := <-events:
		if ok {
			t.Error("expected no further events after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
