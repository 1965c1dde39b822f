package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroscript/rs/internal/value"
)

func TestGet_UnboundReturnsNull(t *testing.T) {
	env := New()
	v, found := env.Get("missing")
	assert.Nil(t, v)
	assert.False(t, found)
}

func TestSet_WritesInOwningScope(t *testing.T) {
	root := New()
	root.Define("x", 1.0)
	child := root.NewChild()
	child.Set("x", 2.0)

	v, _ := root.Get("x")
	assert.Equal(t, 2.0, v, "set should write through to the scope that owns the name")
}

func TestSet_CreatesInCurrentScopeWhenUnowned(t *testing.T) {
	root := New()
	child := root.NewChild()
	child.Set("y", 5.0)

	_, foundInRoot := root.Get("y")
	assert.False(t, foundInRoot)

	v, foundInChild := child.Get("y")
	assert.True(t, foundInChild)
	assert.Equal(t, 5.0, v)
}

func TestGet_DottedPathWalksObject(t *testing.T) {
	env := New()
	obj := value.NewObject()
	obj.Set("b", value.NewObject())
	obj.Get("b").(*value.Object).Set("c", 42.0)
	env.Define("a", obj)

	v, found := env.Get("a.b.c")
	require.True(t, found)
	assert.Equal(t, 42.0, v)
}

func TestGet_DottedPathThroughNilToleratesMissing(t *testing.T) {
	env := New()
	env.Define("a", nil)
	v, found := env.Get("a.b.c")
	assert.True(t, found)
	assert.Nil(t, v)
}

func TestVariables_ScopeChainOuterToInner(t *testing.T) {
	root := New()
	root.Define("x", 1.0)
	child := root.NewChild()
	child.Define("y", 2.0)

	vars := child.Variables()
	assert.Equal(t, 1.0, vars["x"])
	assert.Equal(t, 2.0, vars["y"])
}
