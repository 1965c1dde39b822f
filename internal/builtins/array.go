package builtins

import (
	"sort"

	"github.com/retroscript/rs/internal/value"
)

func arr(args []any, i int) value.Array {
	a, _ := arg(args, i).(value.Array)
	return a
}

func registerArray(r Registry) {
	r["count"] = func(_ Context, a []any) (any, error) { return float64(len(arr(a, 0))), nil }
	r["first"] = func(_ Context, a []any) (any, error) {
		ar := arr(a, 0)
		if len(ar) == 0 {
			return nil, nil
		}
		return ar[0], nil
	}
	r["last"] = func(_ Context, a []any) (any, error) {
		ar := arr(a, 0)
		if len(ar) == 0 {
			return nil, nil
		}
		return ar[len(ar)-1], nil
	}
	r["at"] = func(_ Context, a []any) (any, error) {
		ar := arr(a, 0)
		i := int(num(a, 1))
		if i < 0 {
			i += len(ar)
		}
		if i < 0 || i >= len(ar) {
			return nil, nil
		}
		return ar[i], nil
	}
	r["push"] = func(c Context, a []any) (any, error) {
		ar := append(value.Array{}, arr(a, 0)...)
		ar = append(ar, a[1:]...)
		return clampArr(c, ar), nil
	}
	// pop/shift are intentionally non-mutating: they return the
	// element without altering the source array (spec §9).
	r["pop"] = func(_ Context, a []any) (any, error) {
		ar := arr(a, 0)
		if len(ar) == 0 {
			return nil, nil
		}
		return ar[len(ar)-1], nil
	}
	r["shift"] = func(_ Context, a []any) (any, error) {
		ar := arr(a, 0)
		if len(ar) == 0 {
			return nil, nil
		}
		return ar[0], nil
	}
	r["unshift"] = func(c Context, a []any) (any, error) {
		ar := append(value.Array{}, a[1:]...)
		ar = append(ar, arr(a, 0)...)
		return clampArr(c, ar), nil
	}
	r["includes"] = func(_ Context, a []any) (any, error) {
		for _, e := range arr(a, 0) {
			if value.Equal(e, arg(a, 1)) || looseEqual(e, arg(a, 1)) {
				return true, nil
			}
		}
		return false, nil
	}
	r["findIndex"] = func(_ Context, a []any) (any, error) {
		for i, e := range arr(a, 0) {
			if looseEqual(e, arg(a, 1)) {
				return float64(i), nil
			}
		}
		return -1.0, nil
	}
	r["find"] = func(_ Context, a []any) (any, error) {
		for _, e := range arr(a, 0) {
			if looseEqual(e, arg(a, 1)) {
				return e, nil
			}
		}
		return nil, nil
	}
	r["sort"] = func(_ Context, a []any) (any, error) { return sortArray(arr(a, 0), false), nil }
	r["sortDesc"] = func(_ Context, a []any) (any, error) { return sortArray(arr(a, 0), true), nil }
	r["unique"] = func(_ Context, a []any) (any, error) {
		out := value.Array{}
		for _, e := range arr(a, 0) {
			found := false
			for _, seen := range out {
				if looseEqual(e, seen) {
					found = true
					break
				}
			}
			if !found {
				out = append(out, e)
			}
		}
		return out, nil
	}
	r["flatten"] = func(c Context, a []any) (any, error) {
		depth := 1
		if len(a) > 1 {
			depth = int(num(a, 1))
		}
		return clampArr(c, flatten(arr(a, 0), depth)), nil
	}
	r["range"] = func(c Context, a []any) (any, error) {
		start, end := num(a, 0), num(a, 1)
		step := 1.0
		if len(a) > 2 {
			step = num(a, 2)
		}
		if step == 0 {
			return value.Array{}, nil
		}
		var out value.Array
		if step > 0 {
			for v := start; v < end; v += step {
				out = append(out, v)
			}
		} else {
			for v := start; v > end; v += step {
				out = append(out, v)
			}
		}
		return clampArr(c, out), nil
	}
	r["fill"] = func(c Context, a []any) (any, error) {
		n := int(num(a, 0))
		if n < 0 {
			n = 0
		}
		n = c.Limits().ClampArrayLength(n)
		out := make(value.Array, n)
		for i := range out {
			out[i] = arg(a, 1)
		}
		return out, nil
	}
	r["sum"] = func(_ Context, a []any) (any, error) { return reduceNum(arr(a, 0), 0, func(acc, v float64) float64 { return acc + v }), nil }
	r["avg"] = func(_ Context, a []any) (any, error) {
		ar := arr(a, 0)
		if len(ar) == 0 {
			return 0.0, nil
		}
		sum := reduceNum(ar, 0, func(acc, v float64) float64 { return acc + v })
		return sum / float64(len(ar)), nil
	}
	r["product"] = func(_ Context, a []any) (any, error) {
		return reduceNum(arr(a, 0), 1, func(acc, v float64) float64 { return acc * v }), nil
	}
	r["filter"] = func(_ Context, a []any) (any, error) {
		out := value.Array{}
		target := arg(a, 1)
		for _, e := range arr(a, 0) {
			if looseEqual(e, target) {
				out = append(out, e)
			}
		}
		return out, nil
	}
	r["reject"] = func(_ Context, a []any) (any, error) {
		out := value.Array{}
		target := arg(a, 1)
		for _, e := range arr(a, 0) {
			if !looseEqual(e, target) {
				out = append(out, e)
			}
		}
		return out, nil
	}
	r["map"] = func(_ Context, a []any) (any, error) {
		op, _ := arg(a, 1).(string)
		out := make(value.Array, 0, len(arr(a, 0)))
		for _, e := range arr(a, 0) {
			out = append(out, applyMapOp(op, e))
		}
		return out, nil
	}
	r["splice"] = func(c Context, a []any) (any, error) {
		ar := arr(a, 0)
		start := clampIdx(int(num(a, 1)), len(ar))
		delCount := len(ar) - start
		if len(a) > 2 {
			delCount = int(num(a, 2))
		}
		if delCount < 0 {
			delCount = 0
		}
		end := clampIdx(start+delCount, len(ar))
		out := append(value.Array{}, ar[:start]...)
		if len(a) > 3 {
			out = append(out, a[3:]...)
		}
		out = append(out, ar[end:]...)
		return clampArr(c, out), nil
	}
	r["arrayConcat"] = func(c Context, a []any) (any, error) {
		var out value.Array
		for _, v := range a {
			out = append(out, arrOf(v)...)
		}
		return clampArr(c, out), nil
	}
}

func arrOf(v any) value.Array {
	if a, ok := v.(value.Array); ok {
		return a
	}
	return value.Array{v}
}

func clampArr(c Context, a value.Array) value.Array {
	n := c.Limits().ClampArrayLength(len(a))
	if n == len(a) {
		return a
	}
	return a[:n]
}

func looseEqual(a, b any) bool {
	if value.TypeOf(a) == "number" || value.TypeOf(b) == "number" {
		return value.ToNumber(a) == value.ToNumber(b)
	}
	if value.TypeOf(a) == "string" && value.TypeOf(b) == "string" {
		return a.(string) == b.(string)
	}
	return value.Equal(a, b)
}

func flatten(a value.Array, depth int) value.Array {
	var out value.Array
	for _, e := range a {
		if sub, ok := e.(value.Array); ok && depth > 0 {
			out = append(out, flatten(sub, depth-1)...)
		} else {
			out = append(out, e)
		}
	}
	return out
}

func reduceNum(a value.Array, seed float64, op func(acc, v float64) float64) float64 {
	acc := seed
	for _, e := range a {
		acc = op(acc, value.ToNumber(e))
	}
	return acc
}

func applyMapOp(op string, v any) any {
	switch op {
	case "double":
		return value.ToNumber(v) * 2
	case "square":
		n := value.ToNumber(v)
		return n * n
	case "string":
		return value.ToStringValue(v)
	case "number":
		return value.ToNumber(v)
	case "boolean":
		return value.IsTruthy(v)
	default:
		return v
	}
}

func sortArray(a value.Array, desc bool) value.Array {
	out := append(value.Array{}, a...)
	numeric := true
	for _, e := range out {
		if value.TypeOf(e) != "number" {
			numeric = false
			break
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			if numeric {
				return value.ToNumber(out[i]) > value.ToNumber(out[j])
			}
			return value.ToStringValue(out[i]) > value.ToStringValue(out[j])
		}
		if numeric {
			return value.ToNumber(out[i]) < value.ToNumber(out[j])
		}
		return value.ToStringValue(out[i]) < value.ToStringValue(out[j])
	})
	return out
}
