package builtins

import (
	"fmt"
	"strings"
	"time"

	"github.com/retroscript/rs/internal/value"
)

var debugTimers = map[string]time.Time{}

func registerDebug(r Registry) {
	r["debug"] = func(c Context, a []any) (any, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = value.ToStringValue(v)
		}
		c.Emit("[debug] " + strings.Join(parts, " "))
		return nil, nil
	}
	r["inspect"] = func(_ Context, a []any) (any, error) {
		return fmt.Sprintf("%s(%s)", value.TypeOf(arg(a, 0)), value.ToStringValue(arg(a, 0))), nil
	}
	r["assert"] = func(_ Context, a []any) (any, error) {
		if !value.IsTruthy(arg(a, 0)) {
			msg := "assertion failed"
			if len(a) > 1 {
				msg = str(a, 1)
			}
			return nil, fmt.Errorf("%s", msg)
		}
		return true, nil
	}
	r["assertEqual"] = func(_ Context, a []any) (any, error) {
		if !value.Equal(arg(a, 0), arg(a, 1)) && !looseEqual(arg(a, 0), arg(a, 1)) {
			return nil, fmt.Errorf("assertEqual failed: %s != %s", value.ToStringValue(arg(a, 0)), value.ToStringValue(arg(a, 1)))
		}
		return true, nil
	}
	r["assertType"] = func(_ Context, a []any) (any, error) {
		want := str(a, 1)
		got := value.TypeOf(arg(a, 0))
		if want != got {
			return nil, fmt.Errorf("assertType failed: expected %s, got %s", want, got)
		}
		return true, nil
	}
	r["trace"] = func(c Context, a []any) (any, error) {
		c.Emit("[trace] " + strings.Join(c.CallStack(), " -> "))
		return nil, nil
	}
	r["timeStart"] = func(_ Context, a []any) (any, error) {
		debugTimers[str(a, 0)] = time.Now()
		return nil, nil
	}
	r["timeEnd"] = func(c Context, a []any) (any, error) {
		start, ok := debugTimers[str(a, 0)]
		if !ok {
			return 0.0, nil
		}
		delete(debugTimers, str(a, 0))
		elapsed := time.Since(start).Milliseconds()
		c.Emit(fmt.Sprintf("[timer] %s: %dms", str(a, 0), elapsed))
		return float64(elapsed), nil
	}
	r["getCallStack"] = func(c Context, _ []any) (any, error) {
		out := make(value.Array, len(c.CallStack()))
		for i, f := range c.CallStack() {
			out[i] = f
		}
		return out, nil
	}
	r["dumpVars"] = func(c Context, _ []any) (any, error) {
		out := value.NewObject()
		for k, v := range c.Vars() {
			out.Set(k, v)
		}
		return out, nil
	}
}
