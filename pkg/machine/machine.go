package machine

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/absm/pkg/domain"
)

// Machine is a stack of layers sharing one parameter container.
// It is not safe for concurrent use; hosts serialize access per frame.
type Machine struct {
	parameters *domain.ParameterContainer
	layers     []*Layer
	final      domain.Pose
	hooks      domain.LifecycleHooks
	hooksSet   bool
	logger     *slog.Logger
	debug      bool
	debugSet   bool
}

// New creates a machine with a single empty layer.
func New(opts ...LayerOption) *Machine {
	m := &Machine{parameters: domain.NewParameterContainer()}
	m.AddLayer(NewLayer(opts...))
	return m
}

// NewEmpty creates a machine without layers.
func NewEmpty() *Machine {
	return &Machine{parameters: domain.NewParameterContainer()}
}

// SetParameter sets a parameter and returns m for chaining.
func (m *Machine) SetParameter(name string, p domain.Parameter) *Machine {
	m.parameters.Set(name, p)
	return m
}

// Parameters returns the shared parameter container.
func (m *Machine) Parameters() *domain.ParameterContainer { return m.parameters }

// SetLifecycleHooks installs hooks on every current and future layer.
func (m *Machine) SetLifecycleHooks(hooks domain.LifecycleHooks) {
	m.hooks = hooks
	m.hooksSet = true
	for _, l := range m.layers {
		l.SetLifecycleHooks(hooks)
	}
}

// SetLogger installs logger on every current and future layer.
func (m *Machine) SetLogger(logger *slog.Logger) {
	m.logger = logger
	for _, l := range m.layers {
		l.SetLogger(logger)
	}
}

// SetDebug toggles debug logging on every current and future layer.
func (m *Machine) SetDebug(debug bool) {
	m.debug = debug
	m.debugSet = true
	for _, l := range m.layers {
		l.SetDebug(debug)
	}
}

func (m *Machine) adopt(l *Layer) {
	if l == nil {
		panic("machine: nil layer")
	}
	if m.hooksSet {
		l.SetLifecycleHooks(m.hooks)
	}
	if m.logger != nil {
		l.SetLogger(m.logger)
	}
	if m.debugSet {
		l.SetDebug(m.debug)
	}
}

// AddLayer appends l and returns its index.
func (m *Machine) AddLayer(l *Layer) int {
	m.adopt(l)
	m.layers = append(m.layers, l)
	return len(m.layers) - 1
}

// InsertLayer places l at index i, shifting later layers.
func (m *Machine) InsertLayer(i int, l *Layer) {
	if i < 0 || i > len(m.layers) {
		panic(fmt.Sprintf("machine: layer index %d out of range [0, %d]", i, len(m.layers)))
	}
	m.adopt(l)
	m.layers = append(m.layers, nil)
	copy(m.layers[i+1:], m.layers[i:])
	m.layers[i] = l
}

// RemoveLayer removes and returns the layer at index i.
func (m *Machine) RemoveLayer(i int) *Layer {
	l := m.Layer(i)
	m.layers = append(m.layers[:i], m.layers[i+1:]...)
	return l
}

// PopLayer removes and returns the last layer.
func (m *Machine) PopLayer() (*Layer, bool) {
	if len(m.layers) == 0 {
		return nil, false
	}
	return m.RemoveLayer(len(m.layers) - 1), true
}

// Layer returns the layer at index i. It panics if i is out of range.
func (m *Machine) Layer(i int) *Layer {
	if i < 0 || i >= len(m.layers) {
		panic(fmt.Sprintf("machine: layer index %d out of range [0, %d)", i, len(m.layers)))
	}
	return m.layers[i]
}

// Layers returns the layers in evaluation order.
func (m *Machine) Layers() []*Layer { return m.layers }

// LayerCount returns the number of layers.
func (m *Machine) LayerCount() int { return len(m.layers) }

// FindLayer returns the index of the first layer called name.
func (m *Machine) FindLayer(name string) (int, bool) {
	for i, l := range m.layers {
		if l.name == name {
			return i, true
		}
	}
	return -1, false
}

// EvaluatePose runs one frame for every layer and sums their outputs scaled by layer
// weight. The returned pose is reused by the next call.
func (m *Machine) EvaluatePose(clips ClipSource, dt float32) *domain.Pose {
	m.final.Reset()
	for _, l := range m.layers {
		pose := l.EvaluatePose(clips, m.parameters, dt)
		m.final.BlendWith(pose, l.weight)
	}
	return &m.final
}

// Pose returns the output of the last EvaluatePose call.
func (m *Machine) Pose() *domain.Pose { return &m.final }

// Reset resets every layer to its entry state.
func (m *Machine) Reset() {
	for _, l := range m.layers {
		l.Reset()
	}
}
