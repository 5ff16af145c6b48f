package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"condogov/internal/condo/models"
)

type capturingPublisher struct {
	mu     sync.Mutex
	events []models.Event
	err    error
}

func (p *capturingPublisher) Publish(_ context.Context, event models.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *capturingPublisher) published() []models.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Event, len(p.events))
	copy(out, p.events)
	return out
}

func Test_Bus_DropsWhenFull(t *testing.T) {
	bus := NewBus(1, nil)
	ctx := context.Background()

	bus.Emit(ctx, models.Event{Kind: models.EventTopicChanged, Title: "kept"})
	bus.Emit(ctx, models.Event{Kind: models.EventTopicChanged, Title: "dropped"})

	select {
	case event := <-bus.Events():
		assert.Equal(t, "kept", event.Title)
	default:
		t.Fatal("expected one buffered event")
	}
	select {
	case event := <-bus.Events():
		t.Fatalf("expected empty buffer, got %q", event.Title)
	default:
	}
}

func Test_Worker_ForwardsToPublisher(t *testing.T) {
	bus := NewBus(8, nil)
	publisher := &capturingPublisher{}
	worker := NewWorker(bus, publisher, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	bus.Emit(ctx, models.Event{Kind: models.EventManagerChanged, Manager: "0xAAAA000000000000000000000000000000000001"})
	bus.Emit(ctx, models.Event{Kind: models.EventQuotaChanged, Quota: 12_000})

	require.Eventually(t, func() bool {
		return len(publisher.published()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func Test_Worker_SwallowsPublishErrors(t *testing.T) {
	bus := NewBus(8, nil)
	publisher := &capturingPublisher{err: errors.New("broker unreachable")}
	worker := NewWorker(bus, publisher, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	bus.Emit(ctx, models.Event{Kind: models.EventTopicChanged, Title: "first"})
	bus.Emit(ctx, models.Event{Kind: models.EventTopicChanged, Title: "second"})

	// Both events are attempted; a failing publisher never stops the
	// worker.
	require.Eventually(t, func() bool {
		return len(publisher.published()) == 2
	}, time.Second, 10*time.Millisecond)
}
