package absm

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/absm/internal/logging"
	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/domain"
	"github.com/aretw0/absm/pkg/machine"
	"github.com/aretw0/absm/pkg/observability"
)

// Engine is the high-level entry point for the absm library.
// It drives a machine frame by frame and is not safe for concurrent use.
type Engine struct {
	machine   *machine.Machine
	clips     machine.ClipSource
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	collector *observability.Collector
	debug     bool
	frame     uint64
	time      float64
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets the structured logger used by every layer.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Then(hooks)
	}
}

// WithClipSource sets the animation source sampled by play nodes.
// Without one every clip contributes an empty pose.
func WithClipSource(clips machine.ClipSource) Option {
	return func(e *Engine) {
		e.clips = clips
	}
}

// WithCollector records frames and state changes as Prometheus metrics.
func WithCollector(c *observability.Collector) Option {
	return func(e *Engine) {
		e.collector = c
	}
}

// WithDebug enables state change logging on every layer, including layers added
// after New.
func WithDebug(debug bool) Option {
	return func(e *Engine) {
		e.debug = debug
	}
}

// New wraps m. A nil m is a machine with one empty layer.
func New(m *machine.Machine, opts ...Option) *Engine {
	if m == nil {
		m = machine.New()
	}
	e := &Engine{machine: m, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	m.SetLogger(e.logger)
	if e.debug {
		m.SetDebug(true)
	}
	e.installHooks()
	return e
}

// Open loads, validates and builds the definition at path.
func Open(path string, opts ...Option) (*Engine, error) {
	def, err := definition.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return FromDefinition(def, opts...)
}

// FromDefinition builds an engine from an in-memory definition.
func FromDefinition(def *definition.Definition, opts ...Option) (*Engine, error) {
	m, err := definition.Build(def)
	if err != nil {
		return nil, fmt.Errorf("build machine: %w", err)
	}
	return New(m, opts...), nil
}

// Observe chains hooks after the ones already installed.
func (e *Engine) Observe(hooks domain.LifecycleHooks) {
	e.hooks = e.hooks.Then(hooks)
	e.installHooks()
}

func (e *Engine) installHooks() {
	hooks := e.hooks
	if e.collector != nil {
		hooks = e.collector.Hooks().Then(hooks)
	}
	e.machine.SetLifecycleHooks(hooks)
}

// Tick evaluates one frame of dt seconds and returns the final pose.
// The pose is valid until the next call.
func (e *Engine) Tick(dt float32) *domain.Pose {
	start := time.Now()
	pose := e.machine.EvaluatePose(e.clips, dt)
	e.frame++
	e.time += float64(dt)
	if e.collector != nil {
		e.collector.ObserveFrame(time.Since(start))
	}
	return pose
}

// SetParameter sets a machine parameter and returns e for chaining.
func (e *Engine) SetParameter(name string, p domain.Parameter) *Engine {
	e.machine.SetParameter(name, p)
	return e
}

// Machine exposes the wrapped machine.
func (e *Engine) Machine() *machine.Machine { return e.machine }

// Definition converts the current machine topology back into a definition.
func (e *Engine) Definition() *definition.Definition {
	return definition.FromMachine(e.machine)
}

// Reset snaps every layer back to its entry state and rewinds the frame clock.
func (e *Engine) Reset() {
	e.machine.Reset()
	e.frame = 0
	e.time = 0
}

// LayerEvent is a queued layer event tagged with its layer.
type LayerEvent struct {
	Layer int           `json:"layer"`
	Name  string        `json:"name,omitempty"`
	Event machine.Event `json:"-"`
}

// Drain empties the event queue of every layer, in layer order.
func (e *Engine) Drain() []LayerEvent {
	var out []LayerEvent
	for i, l := range e.machine.Layers() {
		for _, ev := range l.Events() {
			out = append(out, LayerEvent{Layer: i, Name: l.Name(), Event: ev})
		}
	}
	return out
}

// LayerSnapshot is the runtime state of one layer. Progress is set only while a
// transition runs.
type LayerSnapshot struct {
	Name             string   `json:"name"`
	Weight           float32  `json:"weight"`
	ActiveState      string   `json:"active_state,omitempty"`
	ActiveTransition string   `json:"active_transition,omitempty"`
	Progress         *float32 `json:"progress,omitempty"`
}

// Snapshot is a read-only copy of the engine's runtime state.
type Snapshot struct {
	Frame      uint64          `json:"frame"`
	Time       float64         `json:"time"`
	Parameters map[string]any  `json:"parameters"`
	Layers     []LayerSnapshot `json:"layers"`
}

// Snapshot captures the current frame, parameters and active states.
func (e *Engine) Snapshot() Snapshot {
	params := e.machine.Parameters()
	s := Snapshot{
		Frame:      e.frame,
		Time:       e.time,
		Parameters: make(map[string]any, params.Len()),
	}
	for _, name := range params.Names() {
		p, _ := params.Get(name)
		s.Parameters[name] = p.Value()
	}

	for _, l := range e.machine.Layers() {
		ls := LayerSnapshot{Name: l.Name(), Weight: l.Weight()}
		if h := l.ActiveState(); h.IsSome() {
			ls.ActiveState = l.State(h).Name()
		}
		if h := l.ActiveTransition(); h.IsSome() {
			t := l.Transition(h)
			ls.ActiveTransition = t.Name()
			progress := t.Progress()
			ls.Progress = &progress
		}
		s.Layers = append(s.Layers, ls)
	}
	return s
}
