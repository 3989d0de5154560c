package domain

import "sort"

// boneSample is the weighted accumulation of one bone's transforms.
// Position and scale are plain weighted sums; the rotation is a hemisphere-aligned
// weighted quaternion sum that is normalized when read.
type boneSample struct {
	position Vec3
	rotation Quat
	scale    Vec3
	weight   float32
}

// Pose maps bones to local transforms for one animation frame.
//
// Poses are built by weighted accumulation (BlendWith), so the same buffer can be reset
// and refilled every frame without reallocating. The zero value is an empty pose ready
// to use.
type Pose struct {
	bones map[BoneID]boneSample
}

// NewPose creates an empty pose.
func NewPose() *Pose {
	return &Pose{bones: make(map[BoneID]boneSample)}
}

func (p *Pose) ensure() {
	if p.bones == nil {
		p.bones = make(map[BoneID]boneSample)
	}
}

// Reset removes every bone but keeps the allocated storage.
func (p *Pose) Reset() {
	clear(p.bones)
}

// Len returns the number of bones in the pose.
func (p *Pose) Len() int {
	return len(p.bones)
}

// Set stores t for bone with full weight, replacing any previous value.
func (p *Pose) Set(bone BoneID, t LocalTransform) {
	p.ensure()
	p.bones[bone] = boneSample{
		position: t.Position,
		rotation: t.Rotation.Normalize(),
		scale:    t.Scale,
		weight:   1,
	}
}

// Bone returns the transform of bone and whether it is present.
func (p *Pose) Bone(bone BoneID) (LocalTransform, bool) {
	s, ok := p.bones[bone]
	if !ok {
		return LocalTransform{}, false
	}
	return s.transform(), true
}

// Has reports whether bone is present in the pose.
func (p *Pose) Has(bone BoneID) bool {
	_, ok := p.bones[bone]
	return ok
}

// Bones returns the bone identifiers in ascending order.
func (p *Pose) Bones() []BoneID {
	ids := make([]BoneID, 0, len(p.bones))
	for id := range p.bones {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Each calls fn for every bone. Iteration order is unspecified.
func (p *Pose) Each(fn func(BoneID, LocalTransform)) {
	for id, s := range p.bones {
		fn(id, s.transform())
	}
}

// BlendWith accumulates other into p scaled by weight.
// Bones missing from p start from a zero contribution; bones missing from other
// contribute nothing. A zero weight is a no-op.
func (p *Pose) BlendWith(other *Pose, weight float32) {
	if other == nil || weight == 0 {
		return
	}
	p.ensure()
	for id, o := range other.bones {
		s := p.bones[id]
		s.add(o.transform(), weight)
		p.bones[id] = s
	}
}

// Scale multiplies every accumulated component by f. It is used to normalize a
// weighted sum by its total weight.
func (p *Pose) Scale(f float32) {
	for id, s := range p.bones {
		s.position = s.position.Scale(f)
		s.rotation = s.rotation.Scale(f)
		s.scale = s.scale.Scale(f)
		s.weight *= f
		p.bones[id] = s
	}
}

// CopyFrom replaces the content of p with other. A nil other empties p.
func (p *Pose) CopyFrom(other *Pose) {
	p.Reset()
	if other == nil || len(other.bones) == 0 {
		return
	}
	p.ensure()
	for id, s := range other.bones {
		p.bones[id] = s
	}
}

// Clone returns an independent copy of p.
func (p *Pose) Clone() *Pose {
	c := NewPose()
	c.CopyFrom(p)
	return c
}

// Retain keeps only the bones for which keep returns true.
func (p *Pose) Retain(keep func(BoneID) bool) {
	for id := range p.bones {
		if !keep(id) {
			delete(p.bones, id)
		}
	}
}

func (s *boneSample) add(t LocalTransform, weight float32) {
	q := t.Rotation
	if s.rotation.Dot(q) < 0 {
		q = q.Scale(-1)
	}
	s.position = s.position.Add(t.Position.Scale(weight))
	s.rotation = s.rotation.Add(q.Scale(weight))
	s.scale = s.scale.Add(t.Scale.Scale(weight))
	s.weight += weight
}

func (s boneSample) transform() LocalTransform {
	return LocalTransform{
		Position: s.position,
		Rotation: s.rotation.Normalize(),
		Scale:    s.scale,
	}
}
