package definition

import (
	"fmt"

	"github.com/aretw0/absm/pkg/domain"
	"github.com/aretw0/absm/pkg/machine"
)

// Build validates def and constructs a machine from it. opts are applied to every
// layer before the layer's own settings.
// Validation problems are returned wrapped in domain.ErrInvalidDefinition.
func Build(def *Definition, opts ...machine.LayerOption) (*machine.Machine, error) {
	if err := Validate(def); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDefinition, err)
	}

	m := machine.NewEmpty()
	for name, spec := range def.Parameters {
		p, _ := spec.Parameter()
		m.SetParameter(name, p)
	}
	for i := range def.Layers {
		m.AddLayer(buildLayer(&def.Layers[i], opts))
	}
	return m, nil
}

// Open loads a definition file and builds it.
func Open(path string, opts ...machine.LayerOption) (*machine.Machine, error) {
	def, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Build(def, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func buildLayer(spec *LayerSpec, opts []machine.LayerOption) *machine.Layer {
	layerOpts := append([]machine.LayerOption{}, opts...)
	layerOpts = append(layerOpts, machine.WithLayerName(spec.Name))
	if spec.EventCapacity > 0 {
		layerOpts = append(layerOpts, machine.WithEventCapacity(spec.EventCapacity))
	}
	l := machine.NewLayer(layerOpts...)
	if spec.Weight != nil {
		l.SetWeight(*spec.Weight)
	}
	l.SetDebug(spec.Debug)

	mask := machine.NewLayerMask()
	for _, bone := range spec.Mask {
		mask.Exclude(domain.BoneID(bone))
	}
	l.SetMask(mask)

	// Nodes are spawned before their inputs are wired so forward references work.
	handles := make(map[string]machine.NodeHandle, len(spec.Nodes))
	built := make([]machine.PoseNode, len(spec.Nodes))
	for j, n := range spec.Nodes {
		var node machine.PoseNode
		switch {
		case n.Play != nil:
			node = machine.NewPlayAnimation(domain.ClipID(n.Play.Clip))
		case n.Blend != nil:
			node = machine.NewBlendAnimations()
		default:
			b := machine.NewBlendAnimationsByIndex(n.BlendByIndex.Parameter)
			b.Easing = machine.Easing(n.BlendByIndex.Easing)
			node = b
		}
		built[j] = node
		handles[n.ID] = l.AddNode(node)
	}
	for j, n := range spec.Nodes {
		switch node := built[j].(type) {
		case *machine.BlendAnimations:
			for _, in := range n.Blend.Inputs {
				w := machine.ParameterWeight(in.Parameter)
				if in.Weight != nil {
					w = machine.ConstantWeight(*in.Weight)
				}
				node.Inputs = append(node.Inputs, machine.BlendInput{Weight: w, Node: handles[in.Node]})
			}
		case *machine.BlendAnimationsByIndex:
			for _, in := range n.BlendByIndex.Inputs {
				node.Inputs = append(node.Inputs, machine.IndexedBlendInput{Node: handles[in.Node], BlendTime: in.BlendTime})
			}
		}
	}

	states := make(map[string]machine.StateHandle, len(spec.States))
	for _, s := range spec.States {
		var root machine.NodeHandle
		if s.Root != "" {
			root = handles[s.Root]
		}
		states[s.Name] = l.AddState(machine.NewState(s.Name, root))
	}
	if spec.Entry != "" {
		l.SetEntryState(states[spec.Entry])
	}

	for _, ts := range spec.Transitions {
		t := machine.NewTransition(ts.Name, states[ts.From], states[ts.To], ts.Duration, ts.Rule)
		t.SetInvertRule(ts.Invert)
		t.SetEasing(machine.Easing(ts.Easing))
		l.AddTransition(t)
	}
	return l
}

// FromMachine captures the configuration of m. Node ids are generated from slot order
// ("n0", "n1", ...); states and transitions are referenced by name.
func FromMachine(m *machine.Machine) *Definition {
	def := &Definition{Version: CurrentVersion}

	params := m.Parameters()
	if params.Len() > 0 {
		def.Parameters = make(map[string]ParameterSpec, params.Len())
		for _, name := range params.Names() {
			p, _ := params.Get(name)
			def.Parameters[name] = SpecFromParameter(p)
		}
	}
	for _, l := range m.Layers() {
		def.Layers = append(def.Layers, layerSpec(l))
	}
	return def
}

func layerSpec(l *machine.Layer) LayerSpec {
	w := l.Weight()
	spec := LayerSpec{
		Name:   l.Name(),
		Weight: &w,
		Debug:  l.Debug(),
	}
	if c := l.EventCapacity(); c != machine.DefaultEventCapacity {
		spec.EventCapacity = c
	}
	for _, bone := range l.Mask().Bones() {
		spec.Mask = append(spec.Mask, string(bone))
	}

	ids := make(map[machine.NodeHandle]string)
	handles := l.Nodes()
	for i, h := range handles {
		ids[h] = fmt.Sprintf("n%d", i)
	}
	// A node handle with no live slot is a stale reference and panics like any other
	// invalid handle access.
	nodeID := func(h machine.NodeHandle) string {
		if h.IsNone() {
			return ""
		}
		id, ok := ids[h]
		if !ok {
			panic(fmt.Sprintf("definition: layer %q references removed node %s", l.Name(), h))
		}
		return id
	}
	for _, h := range handles {
		spec.Nodes = append(spec.Nodes, nodeSpec(ids[h], l.Node(h), nodeID))
	}

	stateName := func(h machine.StateHandle) string {
		if h.IsNone() {
			return ""
		}
		return l.State(h).Name()
	}
	for _, h := range l.States() {
		s := l.State(h)
		spec.States = append(spec.States, StateSpec{Name: s.Name(), Root: nodeID(s.Root())})
	}
	spec.Entry = stateName(l.EntryState())

	for _, h := range l.Transitions() {
		t := l.Transition(h)
		ts := TransitionSpec{
			Name:     t.Name(),
			From:     stateName(t.Source()),
			To:       stateName(t.Dest()),
			Duration: t.Duration(),
			Rule:     t.Rule(),
			Invert:   t.InvertRule(),
		}
		if t.Easing() != machine.EaseLinear {
			ts.Easing = string(t.Easing())
		}
		spec.Transitions = append(spec.Transitions, ts)
	}
	return spec
}

func nodeSpec(id string, n machine.PoseNode, nodeID func(machine.NodeHandle) string) NodeSpec {
	spec := NodeSpec{ID: id}
	switch node := n.(type) {
	case *machine.PlayAnimation:
		spec.Play = &PlaySpec{Clip: string(node.Clip)}
	case *machine.BlendAnimations:
		b := &BlendSpec{Inputs: []BlendInputSpec{}}
		for _, in := range node.Inputs {
			is := BlendInputSpec{Node: nodeID(in.Node)}
			if in.Weight.IsParameter() {
				is.Parameter = in.Weight.Parameter()
			} else {
				w := in.Weight.Constant()
				is.Weight = &w
			}
			b.Inputs = append(b.Inputs, is)
		}
		spec.Blend = b
	case *machine.BlendAnimationsByIndex:
		b := &BlendByIndexSpec{
			Parameter: node.IndexParameter,
			Inputs:    []IndexedInputSpec{},
		}
		if node.Easing != "" && node.Easing != machine.EaseLinear {
			b.Easing = string(node.Easing)
		}
		for _, in := range node.Inputs {
			b.Inputs = append(b.Inputs, IndexedInputSpec{Node: nodeID(in.Node), BlendTime: in.BlendTime})
		}
		spec.BlendByIndex = b
	}
	return spec
}
