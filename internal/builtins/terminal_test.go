package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorTextContainsSource(t *testing.T) {
	r := New()
	out := call(t, r, "colorText", "hello", "red").(string)
	assert.Contains(t, out, "hello")
}

func TestPrintColorEmits(t *testing.T) {
	r := New()
	c := newFakeContext()
	fn, _ := r.Lookup("printColor")
	_, err := fn(c, []any{"hi", "green"})
	assert.NoError(t, err)
	assert.Len(t, c.emitted, 1)
}
