package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retroscript/rs/internal/value"
)

func TestJSONRoundTrip(t *testing.T) {
	r := New()
	o := value.NewObject()
	o.Set("name", "Ada")
	o.Set("age", 30.0)

	text := call(t, r, "toJSON", o).(string)
	back := call(t, r, "fromJSON", text).(*value.Object)
	assert.Equal(t, "Ada", back.Get("name"))
	assert.Equal(t, 30.0, back.Get("age"))
}

func TestJSONGetSet(t *testing.T) {
	r := New()
	doc := `{"user":{"name":"Ada"}}`
	assert.Equal(t, "Ada", call(t, r, "jsonGet", doc, "user.name"))

	updated := call(t, r, "jsonSet", doc, "user.age", 30.0).(string)
	assert.Equal(t, 30.0, call(t, r, "jsonGet", updated, "user.age"))
}

func TestFromJSONInvalidReturnsNull(t *testing.T) {
	r := New()
	assert.Nil(t, call(t, r, "fromJSON", "not json"))
}
