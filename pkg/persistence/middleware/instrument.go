package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/ports"
)

type instrumentMiddleware struct {
	next     ports.MachineStore
	logger   *slog.Logger
	duration *prometheus.HistogramVec
}

// NewInstrumentMiddleware logs every store operation at debug level and, when reg is
// not nil, records its duration in absm_store_operation_duration_seconds.
func NewInstrumentMiddleware(logger *slog.Logger, reg prometheus.Registerer) (Middleware, error) {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "absm_store_operation_duration_seconds",
		Help:    "Duration of machine store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "result"})
	if reg != nil {
		if err := reg.Register(duration); err != nil {
			return nil, err
		}
	}

	return func(next ports.MachineStore) ports.MachineStore {
		return &instrumentMiddleware{next: next, logger: logger, duration: duration}
	}, nil
}

func (m *instrumentMiddleware) observe(op, machineID string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	d := time.Since(start)
	m.duration.WithLabelValues(op, result).Observe(d.Seconds())
	if m.logger == nil {
		return
	}
	attrs := []any{"op", op, "machine_id", machineID, "duration", d}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	m.logger.Debug("store operation", attrs...)
}

func (m *instrumentMiddleware) Save(ctx context.Context, machineID string, def *definition.Definition) error {
	start := time.Now()
	err := m.next.Save(ctx, machineID, def)
	m.observe("save", machineID, start, err)
	return err
}

func (m *instrumentMiddleware) Load(ctx context.Context, machineID string) (*definition.Definition, error) {
	start := time.Now()
	def, err := m.next.Load(ctx, machineID)
	m.observe("load", machineID, start, err)
	return def, err
}

func (m *instrumentMiddleware) Delete(ctx context.Context, machineID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, machineID)
	m.observe("delete", machineID, start, err)
	return err
}

func (m *instrumentMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.observe("list", "", start, err)
	return ids, err
}
