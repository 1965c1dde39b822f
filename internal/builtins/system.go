package builtins

import (
	"runtime"

	"github.com/retroscript/rs/internal/value"
)

// registerSystem exposes host/runtime introspection builtins: the app
// registry when attached, and process-level facts that need no host
// at all.
func registerSystem(r Registry) {
	r["getApps"] = func(c Context, _ []any) (any, error) {
		hc := c.HostContext()
		if hc == nil || hc.AppRegistry == nil {
			return value.Array{}, nil
		}
		apps := hc.AppRegistry.GetAll()
		out := make(value.Array, 0, len(apps))
		for _, app := range apps {
			o := value.NewObject()
			o.Set("id", app.ID)
			o.Set("name", app.Name)
			out = append(out, o)
		}
		return out, nil
	}
	r["getApp"] = func(c Context, a []any) (any, error) {
		hc := c.HostContext()
		if hc == nil || hc.AppRegistry == nil {
			return nil, nil
		}
		app, ok := hc.AppRegistry.Get(str(a, 0))
		if !ok {
			return nil, nil
		}
		o := value.NewObject()
		o.Set("id", app.ID)
		o.Set("name", app.Name)
		return o, nil
	}
	r["getState"] = func(c Context, a []any) (any, error) {
		hc := c.HostContext()
		if hc == nil || hc.StateManager == nil {
			return nil, nil
		}
		v, ok := hc.StateManager.GetState(str(a, 0))
		if !ok {
			return nil, nil
		}
		return v, nil
	}
	r["setState"] = func(c Context, a []any) (any, error) {
		hc := c.HostContext()
		if hc == nil || hc.StateManager == nil {
			return false, nil
		}
		hc.StateManager.SetState(str(a, 0), arg(a, 1))
		return true, nil
	}
	r["platform"] = func(_ Context, _ []any) (any, error) { return runtime.GOOS, nil }
}
