package domain

import (
	"fmt"
	"sort"
)

// ParameterKind identifies the variant held by a Parameter.
type ParameterKind int

const (
	// KindRule is a boolean used to gate transitions.
	KindRule ParameterKind = iota
	// KindWeight is a real number used as a blend weight.
	KindWeight
	// KindIndex is an integer used to select a blend input.
	KindIndex
)

func (k ParameterKind) String() string {
	switch k {
	case KindRule:
		return "rule"
	case KindWeight:
		return "weight"
	case KindIndex:
		return "index"
	default:
		return fmt.Sprintf("ParameterKind(%d)", int(k))
	}
}

// Parameter is a tagged union of Rule, Weight and Index values.
// Readers must check the variant and treat a mismatch as absent.
type Parameter struct {
	kind   ParameterKind
	rule   bool
	weight float32
	index  int32
}

// Rule creates a boolean rule parameter.
func Rule(v bool) Parameter { return Parameter{kind: KindRule, rule: v} }

// Weight creates a blend weight parameter.
func Weight(v float32) Parameter { return Parameter{kind: KindWeight, weight: v} }

// Index creates an index parameter.
func Index(v int32) Parameter { return Parameter{kind: KindIndex, index: v} }

// Kind returns the variant held by p.
func (p Parameter) Kind() ParameterKind { return p.kind }

// AsRule returns the rule value and whether p is a rule.
func (p Parameter) AsRule() (bool, bool) {
	return p.rule, p.kind == KindRule
}

// AsWeight returns the weight value and whether p is a weight.
func (p Parameter) AsWeight() (float32, bool) {
	return p.weight, p.kind == KindWeight
}

// AsIndex returns the index value and whether p is an index.
func (p Parameter) AsIndex() (int32, bool) {
	return p.index, p.kind == KindIndex
}

// Value returns the held value as bool, float32 or int32.
func (p Parameter) Value() any {
	switch p.kind {
	case KindRule:
		return p.rule
	case KindWeight:
		return p.weight
	default:
		return p.index
	}
}

func (p Parameter) String() string {
	return fmt.Sprintf("%s(%v)", p.kind, p.Value())
}

// ParameterContainer holds the named parameters shared by every layer of a machine.
// Unknown names never raise errors.
type ParameterContainer struct {
	values map[string]*Parameter
}

// NewParameterContainer creates an empty container.
func NewParameterContainer() *ParameterContainer {
	return &ParameterContainer{values: make(map[string]*Parameter)}
}

// Get returns the parameter registered under name.
func (c *ParameterContainer) Get(name string) (Parameter, bool) {
	p, ok := c.values[name]
	if !ok {
		return Parameter{}, false
	}
	return *p, true
}

// GetMut returns a pointer to the parameter registered under name, or nil.
func (c *ParameterContainer) GetMut(name string) *Parameter {
	return c.values[name]
}

// Add registers p under name unless the name is already taken.
func (c *ParameterContainer) Add(name string, p Parameter) {
	if _, ok := c.values[name]; ok {
		return
	}
	if c.values == nil {
		c.values = make(map[string]*Parameter)
	}
	v := p
	c.values[name] = &v
}

// Set replaces the parameter registered under name, or registers it.
func (c *ParameterContainer) Set(name string, p Parameter) {
	if existing := c.GetMut(name); existing != nil {
		*existing = p
		return
	}
	c.Add(name, p)
}

// Remove deletes the parameter registered under name.
func (c *ParameterContainer) Remove(name string) {
	delete(c.values, name)
}

// Len returns the number of registered parameters.
func (c *ParameterContainer) Len() int {
	return len(c.values)
}

// Names returns the registered names in ascending order.
func (c *ParameterContainer) Names() []string {
	names := make([]string, 0, len(c.values))
	for name := range c.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rule returns the value of a rule parameter. Absent or mistyped parameters report false.
func (c *ParameterContainer) Rule(name string) (bool, bool) {
	p, ok := c.values[name]
	if !ok {
		return false, false
	}
	return p.AsRule()
}

// Weight returns the value of a weight parameter. Absent or mistyped parameters report false.
func (c *ParameterContainer) Weight(name string) (float32, bool) {
	p, ok := c.values[name]
	if !ok {
		return 0, false
	}
	return p.AsWeight()
}

// Index returns the value of an index parameter. Absent or mistyped parameters report false.
func (c *ParameterContainer) Index(name string) (int32, bool) {
	p, ok := c.values[name]
	if !ok {
		return 0, false
	}
	return p.AsIndex()
}

// Clone returns an independent copy of the container.
func (c *ParameterContainer) Clone() *ParameterContainer {
	out := NewParameterContainer()
	for name, p := range c.values {
		out.Add(name, *p)
	}
	return out
}
