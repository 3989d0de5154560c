package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/absm"
	"github.com/aretw0/absm/internal/logging"
	"github.com/aretw0/absm/pkg/domain"
)

// Host serializes access to an engine shared by the frame loop and the handlers.
// Every frame runs with the lock held.
type Host struct {
	mu      sync.Mutex
	engine  *absm.Engine
	streams *StreamManager
	logger  *slog.Logger
}

// NewHost wraps e and broadcasts its lifecycle events to SSE subscribers.
func NewHost(e *absm.Engine, logger *slog.Logger) *Host {
	if logger == nil {
		logger = logging.NewNop()
	}
	h := &Host{engine: e, streams: NewStreamManager(logger), logger: logger}
	e.Observe(domain.LifecycleHooks{
		OnStateEnter:         h.publishState,
		OnStateLeave:         h.publishState,
		OnActiveStateChanged: h.publishState,
		OnTransitionChanged: func(ev *domain.TransitionEvent) {
			h.publish(ev)
		},
	})
	return h
}

func (h *Host) publishState(ev *domain.StateEvent) { h.publish(ev) }

func (h *Host) publish(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("encode event failed", "error", err)
		return
	}
	h.streams.Broadcast(string(data))
}

// Streams returns the SSE fan-out.
func (h *Host) Streams() *StreamManager { return h.streams }

// Tick evaluates one frame under the lock.
func (h *Host) Tick(dt float32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine.Tick(dt)
}

// With runs fn with exclusive access to the engine.
func (h *Host) With(fn func(e *absm.Engine)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.engine)
}

// Run ticks the engine rate times per second until ctx is cancelled.
func (h *Host) Run(ctx context.Context, rate int) error {
	if rate <= 0 {
		rate = 60
	}
	interval := time.Second / time.Duration(rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			h.Tick(float32(now.Sub(last).Seconds()))
			last = now
		}
	}
}
