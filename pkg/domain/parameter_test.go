package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameterContainer_SetIsUpsert(t *testing.T) {
	c := NewParameterContainer()
	c.Set("Run", Rule(true))
	c.Set("Run", Weight(0.25))

	p, ok := c.Get("Run")
	assert.True(t, ok)
	assert.Equal(t, KindWeight, p.Kind())
	assert.Equal(t, 1, c.Len())
}

func TestParameterContainer_AddIgnoresExisting(t *testing.T) {
	c := NewParameterContainer()
	c.Add("Gait", Index(1))
	c.Add("Gait", Index(5))

	v, ok := c.Index("Gait")
	assert.True(t, ok)
	assert.Equal(t, int32(1), v)
}

func TestParameterContainer_TypedReadersFailSoft(t *testing.T) {
	c := NewParameterContainer()
	c.Set("Go", Weight(1))

	tests := []struct {
		name string
		read func() bool
	}{
		{"absent rule", func() bool { _, ok := c.Rule("Missing"); return ok }},
		{"mistyped rule", func() bool { _, ok := c.Rule("Go"); return ok }},
		{"mistyped index", func() bool { _, ok := c.Index("Go"); return ok }},
		{"absent weight", func() bool { _, ok := c.Weight("Missing"); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.read())
		})
	}

	w, ok := c.Weight("Go")
	assert.True(t, ok)
	assert.Equal(t, float32(1), w)
}

func TestParameterContainer_GetMut(t *testing.T) {
	c := NewParameterContainer()
	assert.Nil(t, c.GetMut("Jump"))

	c.Set("Jump", Rule(false))
	*c.GetMut("Jump") = Rule(true)

	v, _ := c.Rule("Jump")
	assert.True(t, v)
}

func TestParameterContainer_NamesAndClone(t *testing.T) {
	c := NewParameterContainer()
	c.Set("b", Rule(true))
	c.Set("a", Index(2))

	clone := c.Clone()
	c.Remove("a")

	assert.Equal(t, []string{"b"}, c.Names())
	assert.Equal(t, []string{"a", "b"}, clone.Names())
}

func TestParameter_String(t *testing.T) {
	assert.Equal(t, "rule(true)", Rule(true).String())
	assert.Equal(t, "index(3)", Index(3).String())
	assert.Equal(t, "weight(0.5)", Weight(0.5).String())
}
