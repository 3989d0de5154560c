package definition

// CurrentVersion is the definition format written by this package.
const CurrentVersion = 1

// Definition is the serializable configuration of a machine.
type Definition struct {
	Version    int                      `json:"version" yaml:"version" mapstructure:"version"`
	Parameters map[string]ParameterSpec `json:"parameters,omitempty" yaml:"parameters,omitempty" mapstructure:"parameters"`
	Layers     []LayerSpec              `json:"layers" yaml:"layers" mapstructure:"layers"`
}

// ParameterSpec holds exactly one of Rule, Weight or Index.
type ParameterSpec struct {
	Rule   *bool    `json:"rule,omitempty" yaml:"rule,omitempty" mapstructure:"rule"`
	Weight *float32 `json:"weight,omitempty" yaml:"weight,omitempty" mapstructure:"weight"`
	Index  *int32   `json:"index,omitempty" yaml:"index,omitempty" mapstructure:"index"`
}

// LayerSpec describes one layer. A nil Weight means 1 and an empty Entry selects the
// first state.
type LayerSpec struct {
	Name          string           `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Weight        *float32         `json:"weight,omitempty" yaml:"weight,omitempty" mapstructure:"weight"`
	Entry         string           `json:"entry,omitempty" yaml:"entry,omitempty" mapstructure:"entry"`
	Mask          []string         `json:"mask,omitempty" yaml:"mask,omitempty" mapstructure:"mask"`
	Debug         bool             `json:"debug,omitempty" yaml:"debug,omitempty" mapstructure:"debug"`
	EventCapacity int              `json:"event_capacity,omitempty" yaml:"event_capacity,omitempty" mapstructure:"event_capacity"`
	Nodes         []NodeSpec       `json:"nodes,omitempty" yaml:"nodes,omitempty" mapstructure:"nodes"`
	States        []StateSpec      `json:"states,omitempty" yaml:"states,omitempty" mapstructure:"states"`
	Transitions   []TransitionSpec `json:"transitions,omitempty" yaml:"transitions,omitempty" mapstructure:"transitions"`
}

// NodeSpec is a pose node identified by ID within its layer.
// Exactly one of Play, Blend or BlendByIndex must be set.
type NodeSpec struct {
	ID           string            `json:"id" yaml:"id" mapstructure:"id"`
	Play         *PlaySpec         `json:"play,omitempty" yaml:"play,omitempty" mapstructure:"play"`
	Blend        *BlendSpec        `json:"blend,omitempty" yaml:"blend,omitempty" mapstructure:"blend"`
	BlendByIndex *BlendByIndexSpec `json:"blend_by_index,omitempty" yaml:"blend_by_index,omitempty" mapstructure:"blend_by_index"`
}

type PlaySpec struct {
	Clip string `json:"clip" yaml:"clip" mapstructure:"clip"`
}

type BlendSpec struct {
	Inputs []BlendInputSpec `json:"inputs" yaml:"inputs" mapstructure:"inputs"`
}

// BlendInputSpec weighs Node either by a constant Weight or by a Weight parameter.
type BlendInputSpec struct {
	Node      string   `json:"node" yaml:"node" mapstructure:"node"`
	Weight    *float32 `json:"weight,omitempty" yaml:"weight,omitempty" mapstructure:"weight"`
	Parameter string   `json:"parameter,omitempty" yaml:"parameter,omitempty" mapstructure:"parameter"`
}

type BlendByIndexSpec struct {
	Parameter string             `json:"parameter" yaml:"parameter" mapstructure:"parameter"`
	Easing    string             `json:"easing,omitempty" yaml:"easing,omitempty" mapstructure:"easing"`
	Inputs    []IndexedInputSpec `json:"inputs" yaml:"inputs" mapstructure:"inputs"`
}

type IndexedInputSpec struct {
	Node      string  `json:"node" yaml:"node" mapstructure:"node"`
	BlendTime float32 `json:"blend_time,omitempty" yaml:"blend_time,omitempty" mapstructure:"blend_time"`
}

// StateSpec names a state and its root node. An empty Root yields an empty pose.
type StateSpec struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	Root string `json:"root,omitempty" yaml:"root,omitempty" mapstructure:"root"`
}

// TransitionSpec connects two states of the same layer by name.
type TransitionSpec struct {
	Name     string  `json:"name" yaml:"name" mapstructure:"name"`
	From     string  `json:"from" yaml:"from" mapstructure:"from"`
	To       string  `json:"to" yaml:"to" mapstructure:"to"`
	Duration float32 `json:"duration" yaml:"duration" mapstructure:"duration"`
	Rule     string  `json:"rule" yaml:"rule" mapstructure:"rule"`
	Invert   bool    `json:"invert,omitempty" yaml:"invert,omitempty" mapstructure:"invert"`
	Easing   string  `json:"easing,omitempty" yaml:"easing,omitempty" mapstructure:"easing"`
}
