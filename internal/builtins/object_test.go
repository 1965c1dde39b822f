package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retroscript/rs/internal/value"
)

func TestObjectBuiltins(t *testing.T) {
	r := New()
	o := value.NewObject()
	o.Set("a", 1.0)
	o.Set("b", 2.0)

	assert.Equal(t, value.Array{"a", "b"}, call(t, r, "keys", o))
	assert.Equal(t, value.Array{1.0, 2.0}, call(t, r, "values", o))
	assert.Equal(t, 1.0, call(t, r, "get", o, "a"))
	assert.Equal(t, "fallback", call(t, r, "get", o, "missing", "fallback"))
	assert.True(t, call(t, r, "has", o, "a").(bool))
	assert.False(t, call(t, r, "has", o, "z").(bool))

	updated := call(t, r, "set", o, "c", 3.0).(*value.Object)
	assert.Equal(t, 3.0, updated.Get("c"))
	assert.False(t, o.Has("c"), "set must not mutate the source object")
}

func TestObjectMergeClone(t *testing.T) {
	r := New()
	a := value.NewObject()
	a.Set("x", 1.0)
	b := value.NewObject()
	b.Set("y", 2.0)

	merged := call(t, r, "merge", a, b).(*value.Object)
	assert.Equal(t, 1.0, merged.Get("x"))
	assert.Equal(t, 2.0, merged.Get("y"))

	clone := call(t, r, "clone", a).(*value.Object)
	assert.Equal(t, 1.0, clone.Get("x"))
	assert.NotSame(t, a, clone)
}
