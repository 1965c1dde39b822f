package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, r Registry, name string, args ...any) any {
	t.Helper()
	fn, ok := r.Lookup(name)
	require.True(t, ok, "builtin %q not registered", name)
	v, err := fn(newFakeContext(), args)
	require.NoError(t, err)
	return v
}

func TestMathBuiltins(t *testing.T) {
	r := New()
	assert.Equal(t, 4.0, call(t, r, "abs", -4.0))
	assert.Equal(t, 3.0, call(t, r, "round", 2.6))
	assert.Equal(t, 2.0, call(t, r, "floor", 2.9))
	assert.Equal(t, 3.0, call(t, r, "ceil", 2.1))
	assert.Equal(t, 8.0, call(t, r, "pow", 2.0, 3.0))
	assert.Equal(t, 1.0, call(t, r, "mod", 7.0, 3.0))
	assert.Equal(t, 0.0, call(t, r, "mod", 7.0, 0.0))
	assert.Equal(t, 1.0, call(t, r, "min", 5.0, 1.0, 9.0))
	assert.Equal(t, 9.0, call(t, r, "max", 5.0, 1.0, 9.0))
	assert.Equal(t, 5.0, call(t, r, "clamp", 10.0, 0.0, 5.0))
	assert.Equal(t, -1.0, call(t, r, "sign", -9.0))
}

func TestMathRandomWithinRange(t *testing.T) {
	r := New()
	for i := 0; i < 50; i++ {
		v := call(t, r, "random", 1.0, 3.0).(float64)
		assert.GreaterOrEqual(t, v, 1.0)
		assert.LessOrEqual(t, v, 3.0)
	}
}
