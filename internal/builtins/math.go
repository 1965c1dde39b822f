package builtins

import (
	"math"
	"math/rand"

	"github.com/retroscript/rs/internal/value"
)

func registerMath(r Registry) {
	r["abs"] = func(_ Context, a []any) (any, error) { return math.Abs(num(a, 0)), nil }
	r["round"] = func(_ Context, a []any) (any, error) { return math.Round(num(a, 0)), nil }
	r["floor"] = func(_ Context, a []any) (any, error) { return math.Floor(num(a, 0)), nil }
	r["ceil"] = func(_ Context, a []any) (any, error) { return math.Ceil(num(a, 0)), nil }
	r["sqrt"] = func(_ Context, a []any) (any, error) { return math.Sqrt(num(a, 0)), nil }
	r["pow"] = func(_ Context, a []any) (any, error) { return math.Pow(num(a, 0), num(a, 1)), nil }
	r["mod"] = func(_ Context, a []any) (any, error) {
		y := num(a, 1)
		if y == 0 {
			return 0.0, nil
		}
		return math.Mod(num(a, 0), y), nil
	}
	r["sign"] = func(_ Context, a []any) (any, error) {
		x := num(a, 0)
		switch {
		case x > 0:
			return 1.0, nil
		case x < 0:
			return -1.0, nil
		default:
			return 0.0, nil
		}
	}
	r["min"] = func(_ Context, a []any) (any, error) { return foldNums(a, math.Min, math.Inf(1)), nil }
	r["max"] = func(_ Context, a []any) (any, error) { return foldNums(a, math.Max, math.Inf(-1)), nil }
	r["clamp"] = func(_ Context, a []any) (any, error) {
		x, lo, hi := num(a, 0), num(a, 1), num(a, 2)
		if x < lo {
			return lo, nil
		}
		if x > hi {
			return hi, nil
		}
		return x, nil
	}
	r["random"] = func(_ Context, a []any) (any, error) {
		lo, hi := 0.0, 1.0
		if len(a) > 0 {
			lo = num(a, 0)
		}
		if len(a) > 1 {
			hi = num(a, 1)
		}
		if hi < lo {
			lo, hi = hi, lo
		}
		span := int64(hi) - int64(lo) + 1
		if span <= 0 {
			return lo, nil
		}
		return float64(int64(lo) + rand.Int63n(span)), nil
	}
	r["sin"] = func(_ Context, a []any) (any, error) { return math.Sin(num(a, 0)), nil }
	r["cos"] = func(_ Context, a []any) (any, error) { return math.Cos(num(a, 0)), nil }
	r["tan"] = func(_ Context, a []any) (any, error) { return math.Tan(num(a, 0)), nil }
	r["asin"] = func(_ Context, a []any) (any, error) { return math.Asin(num(a, 0)), nil }
	r["acos"] = func(_ Context, a []any) (any, error) { return math.Acos(num(a, 0)), nil }
	r["atan"] = func(_ Context, a []any) (any, error) { return math.Atan(num(a, 0)), nil }
	r["atan2"] = func(_ Context, a []any) (any, error) { return math.Atan2(num(a, 0), num(a, 1)), nil }
	r["exp"] = func(_ Context, a []any) (any, error) { return math.Exp(num(a, 0)), nil }
	r["log"] = func(_ Context, a []any) (any, error) { return math.Log(num(a, 0)), nil }
	r["log10"] = func(_ Context, a []any) (any, error) { return math.Log10(num(a, 0)), nil }
	r["log2"] = func(_ Context, a []any) (any, error) { return math.Log2(num(a, 0)), nil }
	r["PI"] = func(_ Context, _ []any) (any, error) { return math.Pi, nil }
	r["E"] = func(_ Context, _ []any) (any, error) { return math.E, nil }
}

func num(args []any, i int) float64 { return value.ToNumber(arg(args, i)) }

func foldNums(args []any, op func(a, b float64) float64, seed float64) float64 {
	if len(args) == 0 {
		return 0
	}
	acc := seed
	for _, a := range args {
		acc = op(acc, value.ToNumber(a))
	}
	return acc
}
