package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialogBuiltinsDegradeWithoutHost(t *testing.T) {
	r := New()
	c := newFakeContext()

	fn, _ := r.Lookup("alert")
	_, err := fn(c, []any{"hi"})
	assert.NoError(t, err)
	assert.Contains(t, c.emitted[0], "hi")

	fn, _ = r.Lookup("prompt")
	v, err := fn(c, []any{"name?", "default"})
	assert.NoError(t, err)
	assert.Equal(t, "default", v)

	fn, _ = r.Lookup("confirm")
	v, err = fn(c, []any{"sure?"})
	assert.NoError(t, err)
	assert.Equal(t, false, v)
}
