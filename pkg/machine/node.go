package machine

import (
	"github.com/aretw0/absm/pkg/domain"
	"github.com/aretw0/absm/pkg/pool"
)

// NodeHandle addresses a PoseNode inside a layer.
type NodeHandle = pool.Handle[PoseNode]

// StateHandle addresses a State inside a layer.
type StateHandle = pool.Handle[State]

// TransitionHandle addresses a Transition inside a layer.
type TransitionHandle = pool.Handle[Transition]

// NodeKind identifies the variant of a PoseNode.
type NodeKind string

const (
	KindPlayAnimation          NodeKind = "play"
	KindBlendAnimations        NodeKind = "blend"
	KindBlendAnimationsByIndex NodeKind = "blend_by_index"
)

// PoseNode is a producer of poses in a layer's node graph.
//
// The set of variants is closed: *PlayAnimation, *BlendAnimations and
// *BlendAnimationsByIndex. New kinds are added by extending this package.
// Nodes form a DAG through their child handles; cycles are not detected at
// evaluation time and never terminate.
type PoseNode interface {
	// Kind returns the variant of the node.
	Kind() NodeKind
	// Children returns the handles of the nodes this node reads from.
	Children() []NodeHandle

	evaluate(ctx *evalContext) *domain.Pose
}

// evalContext carries the read-only inputs of one layer evaluation.
type evalContext struct {
	nodes  *pool.Pool[PoseNode]
	params *domain.ParameterContainer
	clips  ClipSource
	dt     float32
}

// eval evaluates the node addressed by h after its inputs (post-order).
func (c *evalContext) eval(h NodeHandle) *domain.Pose {
	return c.nodes.Get(h).evaluate(c)
}

// PlayAnimation forwards the pose of a single clip.
// Playback time is owned by the clip source, not by the node.
type PlayAnimation struct {
	Clip domain.ClipID

	output domain.Pose
}

// NewPlayAnimation creates a node that plays clip.
func NewPlayAnimation(clip domain.ClipID) *PlayAnimation {
	return &PlayAnimation{Clip: clip}
}

func (n *PlayAnimation) Kind() NodeKind { return KindPlayAnimation }

func (n *PlayAnimation) Children() []NodeHandle { return nil }

func (n *PlayAnimation) evaluate(ctx *evalContext) *domain.Pose {
	if ctx.clips == nil {
		n.output.Reset()
		return &n.output
	}
	n.output.CopyFrom(ctx.clips.Advance(n.Clip, ctx.dt))
	return &n.output
}
