package builtins

import "github.com/retroscript/rs/internal/value"

func obj(args []any, i int) *value.Object {
	o, _ := arg(args, i).(*value.Object)
	return o
}

func registerObject(r Registry) {
	r["keys"] = func(_ Context, a []any) (any, error) {
		o := obj(a, 0)
		if o == nil {
			return value.Array{}, nil
		}
		out := make(value.Array, 0, o.Len())
		for _, k := range o.Keys() {
			out = append(out, k)
		}
		return out, nil
	}
	r["values"] = func(_ Context, a []any) (any, error) {
		o := obj(a, 0)
		if o == nil {
			return value.Array{}, nil
		}
		out := make(value.Array, 0, o.Len())
		for _, k := range o.Keys() {
			out = append(out, o.Get(k))
		}
		return out, nil
	}
	r["entries"] = func(_ Context, a []any) (any, error) {
		o := obj(a, 0)
		if o == nil {
			return value.Array{}, nil
		}
		out := make(value.Array, 0, o.Len())
		for _, k := range o.Keys() {
			out = append(out, value.Array{k, o.Get(k)})
		}
		return out, nil
	}
	r["get"] = func(_ Context, a []any) (any, error) {
		o := obj(a, 0)
		if o == nil || !o.Has(str(a, 1)) {
			return arg(a, 2), nil
		}
		return o.Get(str(a, 1)), nil
	}
	r["set"] = func(_ Context, a []any) (any, error) {
		o := obj(a, 0)
		clone := value.NewObject()
		if o != nil {
			clone = o.Clone()
		}
		clone.Set(str(a, 1), arg(a, 2))
		return clone, nil
	}
	r["has"] = func(_ Context, a []any) (any, error) {
		o := obj(a, 0)
		if o == nil {
			return false, nil
		}
		return o.Has(str(a, 1)), nil
	}
	r["merge"] = func(_ Context, a []any) (any, error) {
		out := value.NewObject()
		for _, v := range a {
			if o, ok := v.(*value.Object); ok {
				for _, k := range o.Keys() {
					out.Set(k, o.Get(k))
				}
			}
		}
		return out, nil
	}
	r["clone"] = func(_ Context, a []any) (any, error) {
		o := obj(a, 0)
		if o == nil {
			return value.NewObject(), nil
		}
		return o.Clone(), nil
	}
}
