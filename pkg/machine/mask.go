package machine

import (
	"sort"

	"github.com/aretw0/absm/pkg/domain"
)

// LayerMask is a set of bones a layer must not animate.
// The zero value excludes nothing.
type LayerMask struct {
	excluded map[domain.BoneID]struct{}
}

// NewLayerMask creates a mask excluding bones.
func NewLayerMask(bones ...domain.BoneID) LayerMask {
	var m LayerMask
	for _, b := range bones {
		m.Exclude(b)
	}
	return m
}

// Exclude stops the layer from animating bone.
func (m *LayerMask) Exclude(bone domain.BoneID) {
	if m.excluded == nil {
		m.excluded = make(map[domain.BoneID]struct{})
	}
	m.excluded[bone] = struct{}{}
}

// Include lets the layer animate bone again.
func (m *LayerMask) Include(bone domain.BoneID) {
	delete(m.excluded, bone)
}

// ShouldAnimate reports whether bone passes the mask.
func (m *LayerMask) ShouldAnimate(bone domain.BoneID) bool {
	_, ok := m.excluded[bone]
	return !ok
}

// Bones returns the excluded bones in ascending order.
func (m *LayerMask) Bones() []domain.BoneID {
	out := make([]domain.BoneID, 0, len(m.excluded))
	for b := range m.excluded {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (m *LayerMask) Len() int { return len(m.excluded) }

func (m *LayerMask) apply(p *domain.Pose) {
	if len(m.excluded) == 0 {
		return
	}
	p.Retain(m.ShouldAnimate)
}
