package domain

// EventType defines the category of a lifecycle event.
type EventType string

const (
	EventStateEnter         EventType = "state_enter"
	EventStateLeave         EventType = "state_leave"
	EventActiveStateChanged EventType = "active_state_changed"
	EventTransitionChanged  EventType = "active_transition_changed"
)

// StateEvent reports that a layer entered, left or settled on a state.
type StateEvent struct {
	Type  EventType `json:"type"`
	Layer string    `json:"layer"`
	State string    `json:"state"`
}

// TransitionEvent reports a change of a layer's active transition.
// An empty Transition means the transition completed and was cleared.
type TransitionEvent struct {
	Type       EventType `json:"type"`
	Layer      string    `json:"layer"`
	Transition string    `json:"transition,omitempty"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
}

// LifecycleHooks defines callbacks for machine observability.
// Hooks run synchronously inside pose evaluation and must not mutate the machine.
type LifecycleHooks struct {
	OnStateEnter         func(*StateEvent)
	OnStateLeave         func(*StateEvent)
	OnActiveStateChanged func(*StateEvent)
	OnTransitionChanged  func(*TransitionEvent)
}

// Then returns hooks that call h first and next afterwards.
func (h LifecycleHooks) Then(next LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStateEnter:         chainState(h.OnStateEnter, next.OnStateEnter),
		OnStateLeave:         chainState(h.OnStateLeave, next.OnStateLeave),
		OnActiveStateChanged: chainState(h.OnActiveStateChanged, next.OnActiveStateChanged),
		OnTransitionChanged:  chainTransition(h.OnTransitionChanged, next.OnTransitionChanged),
	}
}

func chainState(a, b func(*StateEvent)) func(*StateEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *StateEvent) {
		a(e)
		b(e)
	}
}

func chainTransition(a, b func(*TransitionEvent)) func(*TransitionEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *TransitionEvent) {
		a(e)
		b(e)
	}
}
