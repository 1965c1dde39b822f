package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeNowFields(t *testing.T) {
	r := New()
	assert.IsType(t, 0.0, call(t, r, "now"))
	assert.IsType(t, 0.0, call(t, r, "timestamp"))
	assert.IsType(t, 0.0, call(t, r, "year"))
}

func TestTimeNowIsMillisecondsAndTimestampIsSeconds(t *testing.T) {
	r := New()
	now := call(t, r, "now").(float64)
	timestamp := call(t, r, "timestamp").(float64)

	// now is ms since epoch, timestamp is seconds since epoch, so now
	// should be roughly timestamp * 1000 (within a second of slop).
	assert.InDelta(t, timestamp*1000, now, 1000)
}

func TestTimeFormatAndParse(t *testing.T) {
	r := New()
	out := call(t, r, "formatDate", "2024-03-05 10:00:00", "YYYY/MM/DD")
	assert.Equal(t, "2024/03/05", out)

	ms := call(t, r, "parseDate", "2024-03-05")
	assert.NotNil(t, ms)
}

func TestTimeElapsedNonNegative(t *testing.T) {
	r := New()
	fn, _ := r.Lookup("elapsed")
	c := newFakeContext()
	v, err := fn(c, nil)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, v.(float64), 0.0)
}
