package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retroscript/rs/internal/value"
)

func TestArrayBasics(t *testing.T) {
	r := New()
	a := value.Array{1.0, 2.0, 3.0}
	assert.Equal(t, 3.0, call(t, r, "count", a))
	assert.Equal(t, 1.0, call(t, r, "first", a))
	assert.Equal(t, 3.0, call(t, r, "last", a))
	assert.Equal(t, 2.0, call(t, r, "at", a, 1.0))
	assert.Equal(t, 2.0, call(t, r, "at", a, -2.0))
}

func TestArrayPushIsNonMutating(t *testing.T) {
	r := New()
	a := value.Array{1.0, 2.0}
	out := call(t, r, "push", a, 3.0).(value.Array)
	assert.Equal(t, value.Array{1.0, 2.0, 3.0}, out)
	assert.Equal(t, value.Array{1.0, 2.0}, a, "source array must be unchanged")
}

func TestArrayPopShiftAreNonMutating(t *testing.T) {
	r := New()
	a := value.Array{1.0, 2.0, 3.0}
	assert.Equal(t, 3.0, call(t, r, "pop", a))
	assert.Equal(t, 1.0, call(t, r, "shift", a))
	assert.Equal(t, value.Array{1.0, 2.0, 3.0}, a)
}

func TestArraySortVariants(t *testing.T) {
	r := New()
	a := value.Array{3.0, 1.0, 2.0}
	assert.Equal(t, value.Array{1.0, 2.0, 3.0}, call(t, r, "sort", a))
	assert.Equal(t, value.Array{3.0, 2.0, 1.0}, call(t, r, "sortDesc", a))
}

func TestArrayUniqueFlattenRange(t *testing.T) {
	r := New()
	dup := value.Array{1.0, 1.0, 2.0, 2.0, 3.0}
	assert.Equal(t, value.Array{1.0, 2.0, 3.0}, call(t, r, "unique", dup))

	nested := value.Array{1.0, value.Array{2.0, 3.0}, value.Array{4.0, value.Array{5.0}}}
	assert.Equal(t, value.Array{1.0, 2.0, 3.0, 4.0, value.Array{5.0}}, call(t, r, "flatten", nested))

	assert.Equal(t, value.Array{0.0, 1.0, 2.0}, call(t, r, "range", 0.0, 3.0))
}

func TestArrayMapFilterReject(t *testing.T) {
	r := New()
	a := value.Array{1.0, 2.0, 3.0}
	assert.Equal(t, value.Array{2.0, 4.0, 6.0}, call(t, r, "map", a, "double"))
	assert.Equal(t, value.Array{2.0}, call(t, r, "filter", a, 2.0))
	assert.Equal(t, value.Array{1.0, 3.0}, call(t, r, "reject", a, 2.0))
}

func TestArraySumAvgProduct(t *testing.T) {
	r := New()
	a := value.Array{1.0, 2.0, 3.0, 4.0}
	assert.Equal(t, 10.0, call(t, r, "sum", a))
	assert.Equal(t, 2.5, call(t, r, "avg", a))
	assert.Equal(t, 24.0, call(t, r, "product", a))
}

func TestArraySpliceIsNonMutating(t *testing.T) {
	r := New()
	a := value.Array{1.0, 2.0, 3.0, 4.0}
	out := call(t, r, "splice", a, 1.0, 2.0, 9.0).(value.Array)
	assert.Equal(t, value.Array{1.0, 9.0, 4.0}, out)
	assert.Equal(t, value.Array{1.0, 2.0, 3.0, 4.0}, a)
}
