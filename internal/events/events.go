// Package events fans domain events out to external consumers. The engine
// emits into a buffered Bus; a Worker drains it, logs every event and
// optionally publishes to Kafka. Delivery is best-effort and never blocks
// or fails a mutating call.
package events

import (
	"context"
	"log/slog"

	"condogov/internal/condo/models"
)

// Bus is a bounded in-process queue of domain events. When the buffer is
// full new events are dropped and counted in the log rather than blocking
// the engine.
type Bus struct {
	ch     chan models.Event
	logger *slog.Logger
}

// NewBus builds a bus with the given buffer size.
func NewBus(size int, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{ch: make(chan models.Event, size), logger: logger}
}

// Emit enqueues an event, dropping it when the buffer is full.
func (b *Bus) Emit(ctx context.Context, event models.Event) {
	select {
	case b.ch <- event:
	default:
		b.logger.WarnContext(ctx, "event buffer full, dropping event",
			"kind", string(event.Kind),
			"topic", event.Title,
		)
	}
}

// Events exposes the receive side for the worker.
func (b *Bus) Events() <-chan models.Event { return b.ch }

// Publisher sends an event to an external system.
type Publisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// Worker consumes events from the bus, logs them and forwards them to the
// publisher when one is configured.
type Worker struct {
	bus       *Bus
	publisher Publisher
	logger    *slog.Logger
}

// NewWorker builds a worker; publisher may be nil for log-only fan-out.
func NewWorker(bus *Bus, publisher Publisher, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{bus: bus, publisher: publisher, logger: logger}
}

// Run drains the bus until ctx is cancelled. Publish failures are logged
// and swallowed; the producing call has already succeeded.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.bus.Events():
			w.logger.InfoContext(ctx, "domain event",
				"kind", string(event.Kind),
				"topic", event.Title,
				"status", event.Status.String(),
			)
			if w.publisher == nil {
				continue
			}
			if err := w.publisher.Publish(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to publish event",
					"kind", string(event.Kind),
					"error", err.Error(),
				)
			}
		}
	}
}
