package builtins

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retroscript/rs/internal/value"
)

func TestStringBuiltins(t *testing.T) {
	r := New()
	assert.Equal(t, "HELLO", call(t, r, "upper", "hello"))
	assert.Equal(t, "hello", call(t, r, "lower", "HELLO"))
	assert.Equal(t, "hi", call(t, r, "trim", "  hi  "))
	assert.Equal(t, 5.0, call(t, r, "length", "hello"))
	assert.Equal(t, "e", call(t, r, "charAt", "hello", 1.0))
	assert.Equal(t, "llo", call(t, r, "substr", "hello", 2.0))
	assert.Equal(t, "ell", call(t, r, "slice", "hello", 1.0, -1.0))
	assert.Equal(t, 2.0, call(t, r, "indexOf", "hello", "l"))
	assert.True(t, call(t, r, "contains", "hello", "ell").(bool))
	assert.True(t, call(t, r, "startsWith", "hello", "he").(bool))
	assert.True(t, call(t, r, "endsWith", "hello", "lo").(bool))
	assert.Equal(t, "heLlo", call(t, r, "replace", "hello", "l", "L"))
	assert.Equal(t, "heLLo", call(t, r, "replaceAll", "hello", "l", "L"))
	assert.Equal(t, "olleh", call(t, r, "reverse", "hello"))
	assert.Equal(t, "007", call(t, r, "padStart", "7", 3.0, "0"))
	assert.Equal(t, "7--", call(t, r, "padEnd", "7", 3.0, "-"))
	assert.Equal(t, "ababab", call(t, r, "repeat", "ab", 3.0))
}

func TestStringSplitJoin(t *testing.T) {
	r := New()
	parts := call(t, r, "split", "a,b,c", ",").(value.Array)
	assert.Equal(t, value.Array{"a", "b", "c"}, parts)
	joined := call(t, r, "join", parts, "-")
	assert.Equal(t, "a-b-c", joined)
}

func TestStringRepeatClampedByLimit(t *testing.T) {
	r := New()
	fn, _ := r.Lookup("repeat")
	c := newFakeContext()
	c.limits.MaxStringLength = 4
	v, err := fn(c, []any{"ab", 10.0})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(v.(string), "abab") || len(v.(string)) == 4)
	assert.LessOrEqual(t, len(v.(string)), 4)
}
