package machine

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/absm/internal/logging"
	"github.com/aretw0/absm/pkg/domain"
	"github.com/aretw0/absm/pkg/pool"
)

// Layer is an independent state graph whose output pose is masked and then summed
// into the machine's final pose according to its weight.
//
// A layer owns three arenas (pose nodes, states and transitions). Handles returned by
// the Add methods stay valid until the addressed entry is removed.
type Layer struct {
	name string

	nodes       pool.Pool[PoseNode]
	states      pool.Pool[State]
	transitions pool.Pool[Transition]

	activeState      StateHandle
	entryState       StateHandle
	activeTransition TransitionHandle

	weight float32
	mask   LayerMask
	pose   domain.Pose
	events *EventQueue

	debug  bool
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// LayerOption configures a Layer at construction.
type LayerOption func(*Layer)

// WithLayerName names the layer. The name shows up in logs and lifecycle events.
func WithLayerName(name string) LayerOption {
	return func(l *Layer) { l.name = name }
}

// WithEventCapacity fixes the size of the event queue.
func WithEventCapacity(n int) LayerOption {
	return func(l *Layer) { l.events = NewEventQueue(n) }
}

// WithLogger injects the logger used in debug mode.
func WithLogger(logger *slog.Logger) LayerOption {
	return func(l *Layer) { l.SetLogger(logger) }
}

// WithWeight sets the initial layer weight.
func WithWeight(w float32) LayerOption {
	return func(l *Layer) { l.weight = w }
}

// NewLayer creates an empty layer with weight 1.
func NewLayer(opts ...LayerOption) *Layer {
	l := &Layer{
		weight: 1,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.events == nil {
		l.events = NewEventQueue(DefaultEventCapacity)
	}
	return l
}

func (l *Layer) Name() string { return l.name }
func (l *Layer) SetName(name string) { l.name = name }

// SetLogger replaces the debug logger. A nil logger discards output.
func (l *Layer) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = logging.NewNop()
	}
	l.logger = logger
}

// SetLifecycleHooks replaces the callbacks fired alongside queued events.
func (l *Layer) SetLifecycleHooks(hooks domain.LifecycleHooks) { l.hooks = hooks }

// SetDebug toggles Info logging of state changes.
func (l *Layer) SetDebug(debug bool) { l.debug = debug }
func (l *Layer) Debug() bool { return l.debug }

func (l *Layer) Weight() float32 { return l.weight }
func (l *Layer) SetWeight(w float32) { l.weight = w }

// SetMask replaces the layer mask and returns the previous one.
func (l *Layer) SetMask(mask LayerMask) LayerMask {
	old := l.mask
	l.mask = mask
	return old
}

// Mask returns the layer mask for in-place edits.
func (l *Layer) Mask() *LayerMask { return &l.mask }

// AddNode stores a pose node and returns its handle.
func (l *Layer) AddNode(n PoseNode) NodeHandle {
	return l.nodes.Spawn(n)
}

// RemoveNode deletes a pose node. Nodes and states still pointing at it panic on the
// next evaluation.
func (l *Layer) RemoveNode(h NodeHandle) PoseNode {
	return l.nodes.Free(h)
}

// Node returns the node addressed by h. It panics if h is invalid.
func (l *Layer) Node(h NodeHandle) PoseNode {
	return l.nodes.Get(h)
}

// Nodes returns every node handle in slot order.
func (l *Layer) Nodes() []NodeHandle { return l.nodes.Handles() }

// AddState stores a state. The first state added becomes both the entry and the
// active state.
func (l *Layer) AddState(s State) StateHandle {
	h := l.states.Spawn(s)
	if l.activeState.IsNone() && l.entryState.IsNone() && l.activeTransition.IsNone() {
		l.activeState = h
		l.entryState = h
	}
	return h
}

// RemoveState deletes a state. Transitions referencing it must be removed by the
// caller; the layer only forgets it as entry or active state.
func (l *Layer) RemoveState(h StateHandle) State {
	s := l.states.Free(h)
	if l.activeState == h {
		l.activeState = pool.None[State]()
	}
	if l.entryState == h {
		l.entryState = pool.None[State]()
	}
	return s
}

// State returns the state addressed by h. It panics if h is invalid.
func (l *Layer) State(h StateHandle) *State {
	return l.states.Borrow(h)
}

// States returns every state handle in slot order.
func (l *Layer) States() []StateHandle { return l.states.Handles() }

// FindState returns the first state called name.
func (l *Layer) FindState(name string) (StateHandle, bool) {
	for h, s := range l.states.All() {
		if s.name == name {
			return h, true
		}
	}
	return pool.None[State](), false
}

// AddTransition stores a transition. Both endpoints must be live states.
func (l *Layer) AddTransition(t Transition) TransitionHandle {
	if !l.states.IsValid(t.source) || !l.states.IsValid(t.dest) {
		panic(fmt.Sprintf("machine: transition %q references an invalid state (%s -> %s)", t.name, t.source, t.dest))
	}
	return l.transitions.Spawn(t)
}

// RemoveTransition deletes a transition, clearing it if it was active.
func (l *Layer) RemoveTransition(h TransitionHandle) Transition {
	t := l.transitions.Free(h)
	if l.activeTransition == h {
		l.activeTransition = pool.None[Transition]()
		l.activeState = t.source
		if !l.states.IsValid(l.activeState) {
			l.activeState = pool.None[State]()
		}
	}
	return t
}

// Transition returns the transition addressed by h. It panics if h is invalid.
func (l *Layer) Transition(h TransitionHandle) *Transition {
	return l.transitions.Borrow(h)
}

// Transitions returns every transition handle in scan order.
func (l *Layer) Transitions() []TransitionHandle { return l.transitions.Handles() }

// FindTransition returns the first transition called name.
func (l *Layer) FindTransition(name string) (TransitionHandle, bool) {
	for h, t := range l.transitions.All() {
		if t.name == name {
			return h, true
		}
	}
	return pool.None[Transition](), false
}

// SetEntryState makes h the state restored by Reset and activates it.
func (l *Layer) SetEntryState(h StateHandle) {
	l.states.Borrow(h)
	l.entryState = h
	l.activeState = h
}

func (l *Layer) EntryState() StateHandle { return l.entryState }

// ActiveState returns the current state, or none while a transition is running.
func (l *Layer) ActiveState() StateHandle { return l.activeState }

// ActiveTransition returns the running transition, or none.
func (l *Layer) ActiveTransition() TransitionHandle { return l.activeTransition }

// PopEvent removes the oldest queued event.
func (l *Layer) PopEvent() (Event, bool) { return l.events.Pop() }

// Events drains the event queue in FIFO order.
func (l *Layer) Events() []Event {
	out := make([]Event, 0, l.events.Len())
	for {
		e, ok := l.events.Pop()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

// EventCapacity returns the size of the event queue.
func (l *Layer) EventCapacity() int { return l.events.Cap() }

// Reset rewinds every transition and indexed selector, drops the active transition
// and re-activates the entry state.
func (l *Layer) Reset() {
	for _, t := range l.transitions.All() {
		t.Reset()
	}
	for _, n := range l.nodes.All() {
		if ix, ok := (*n).(*BlendAnimationsByIndex); ok {
			ix.Reset()
		}
	}
	l.activeTransition = pool.None[Transition]()
	l.activeState = l.entryState
}

// Pose returns the output of the last evaluation.
func (l *Layer) Pose() *domain.Pose { return &l.pose }

// EvaluatePose runs one frame of the layer and returns its masked output pose.
// The returned pose is owned by the layer and valid until the next call.
func (l *Layer) EvaluatePose(clips ClipSource, params *domain.ParameterContainer, dt float32) *domain.Pose {
	l.pose.Reset()
	if l.activeState.IsNone() && l.activeTransition.IsNone() {
		return &l.pose
	}

	ctx := &evalContext{nodes: &l.nodes, params: params, clips: clips, dt: dt}
	for _, s := range l.states.All() {
		s.update(ctx)
	}

	if l.activeTransition.IsNone() {
		if h, ok := l.findTransition(params); ok {
			l.beginTransition(h)
		}
	}

	if l.activeTransition.IsSome() {
		t := l.transitions.Borrow(l.activeTransition)
		f := t.BlendFactor()
		l.pose.BlendWith(l.states.Borrow(t.source).Pose(), 1-f)
		l.pose.BlendWith(l.states.Borrow(t.dest).Pose(), f)

		t.update(dt)
		if t.IsDone() {
			l.completeTransition(t)
		}
	}

	if l.activeTransition.IsNone() {
		l.pose.CopyFrom(l.states.Borrow(l.activeState).Pose())
	}

	l.mask.apply(&l.pose)
	return &l.pose
}

// findTransition returns the first transition, in scan order, that may leave the
// active state this frame. It does not mutate the layer.
func (l *Layer) findTransition(params *domain.ParameterContainer) (TransitionHandle, bool) {
	for h, t := range l.transitions.All() {
		if t.dest == l.activeState || t.source != l.activeState {
			continue
		}
		var rule bool
		if params != nil {
			rule, _ = params.Rule(t.rule)
		}
		if t.invertRule {
			rule = !rule
		}
		if rule {
			return h, true
		}
	}
	return pool.None[Transition](), false
}

func (l *Layer) beginTransition(h TransitionHandle) {
	t := l.transitions.Borrow(h)

	l.pushState(EventStateLeave, l.activeState)
	l.pushState(EventStateEnter, t.source)

	l.activeState = pool.None[State]()
	l.activeTransition = h
	l.pushTransition(h, t)
}

func (l *Layer) completeTransition(t *Transition) {
	t.Reset()
	l.activeTransition = pool.None[Transition]()
	l.activeState = t.dest

	l.pushTransition(pool.None[Transition](), nil)
	l.pushState(EventActiveStateChanged, t.dest)
}

func (l *Layer) stateName(h StateHandle) string {
	if s, ok := l.states.TryBorrow(h); ok {
		return s.name
	}
	return ""
}

func (l *Layer) pushState(kind EventKind, h StateHandle) {
	l.events.Push(Event{Kind: kind, State: h})

	name := l.stateName(h)
	var (
		hook func(*domain.StateEvent)
		typ  domain.EventType
		msg  string
	)
	switch kind {
	case EventStateEnter:
		hook, typ, msg = l.hooks.OnStateEnter, domain.EventStateEnter, "entering state"
	case EventStateLeave:
		hook, typ, msg = l.hooks.OnStateLeave, domain.EventStateLeave, "leaving state"
	default:
		hook, typ, msg = l.hooks.OnActiveStateChanged, domain.EventActiveStateChanged, "active state changed"
	}

	if l.debug {
		l.logger.Info(msg, "layer", l.name, "state", name)
	}
	if hook != nil {
		hook(&domain.StateEvent{Type: typ, Layer: l.name, State: name})
	}
}

func (l *Layer) pushTransition(h TransitionHandle, t *Transition) {
	l.events.Push(Event{Kind: EventActiveTransitionChanged, Transition: h})
	if l.hooks.OnTransitionChanged == nil {
		return
	}
	ev := &domain.TransitionEvent{Type: domain.EventTransitionChanged, Layer: l.name}
	if t != nil {
		ev.Transition = t.name
		ev.From = l.stateName(t.source)
		ev.To = l.stateName(t.dest)
	}
	l.hooks.OnTransitionChanged(ev)
}
