package observability

import (
	"log/slog"

	"github.com/aretw0/absm/pkg/domain"
)

// LogHooks returns lifecycle hooks that write every event to logger.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	state := func(e *domain.StateEvent) {
		logger.Info(string(e.Type), "layer", e.Layer, "state", e.State)
	}
	return domain.LifecycleHooks{
		OnStateEnter:         state,
		OnStateLeave:         state,
		OnActiveStateChanged: state,
		OnTransitionChanged: func(e *domain.TransitionEvent) {
			if e.Transition == "" {
				logger.Info(string(e.Type), "layer", e.Layer, "transition", nil)
				return
			}
			logger.Info(string(e.Type),
				"layer", e.Layer,
				"transition", e.Transition,
				"from", e.From,
				"to", e.To,
			)
		},
	}
}
