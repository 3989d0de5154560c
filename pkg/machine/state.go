package machine

import "github.com/aretw0/absm/pkg/domain"

// State is a named node of a layer's state graph. Its pose is produced by a root
// PoseNode and cached after every evaluation so transitions can read it.
type State struct {
	name string
	root NodeHandle
	pose domain.Pose
}

// NewState creates a state whose pose comes from root.
func NewState(name string, root NodeHandle) State {
	return State{name: name, root: root}
}

// Name returns the state name.
func (s *State) Name() string { return s.name }

// SetName renames the state.
func (s *State) SetName(name string) { s.name = name }

// Root returns the handle of the root pose node.
func (s *State) Root() NodeHandle { return s.root }

// SetRoot replaces the root pose node.
func (s *State) SetRoot(root NodeHandle) { s.root = root }

// Pose returns the pose cached by the last evaluation.
func (s *State) Pose() *domain.Pose { return &s.pose }

func (s *State) update(ctx *evalContext) {
	if s.root.IsNone() {
		s.pose.Reset()
		return
	}
	s.pose.CopyFrom(ctx.eval(s.root))
}
