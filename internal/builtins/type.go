package builtins

import "github.com/retroscript/rs/internal/value"

func registerType(r Registry) {
	r["typeof"] = func(_ Context, a []any) (any, error) { return value.TypeOf(arg(a, 0)), nil }
	r["isNumber"] = func(_ Context, a []any) (any, error) { return value.TypeOf(arg(a, 0)) == "number", nil }
	r["isString"] = func(_ Context, a []any) (any, error) { return value.TypeOf(arg(a, 0)) == "string", nil }
	r["isBoolean"] = func(_ Context, a []any) (any, error) { return value.TypeOf(arg(a, 0)) == "boolean", nil }
	r["isArray"] = func(_ Context, a []any) (any, error) { return value.TypeOf(arg(a, 0)) == "array", nil }
	r["isObject"] = func(_ Context, a []any) (any, error) { return value.TypeOf(arg(a, 0)) == "object", nil }
	r["isNull"] = func(_ Context, a []any) (any, error) { return arg(a, 0) == nil, nil }
	r["isUndefined"] = func(_ Context, a []any) (any, error) { return value.TypeOf(arg(a, 0)) == "undefined", nil }
	r["isNaN"] = func(_ Context, a []any) (any, error) {
		f, ok := arg(a, 0).(float64)
		return ok && f != f, nil
	}
	r["isFinite"] = func(_ Context, a []any) (any, error) {
		f, ok := arg(a, 0).(float64)
		if !ok {
			return false, nil
		}
		return f == f && f+1 != f, nil
	}
	r["isInteger"] = func(_ Context, a []any) (any, error) {
		f, ok := arg(a, 0).(float64)
		return ok && f == float64(int64(f)), nil
	}
	r["isEmpty"] = func(_ Context, a []any) (any, error) { return !value.IsTruthy(arg(a, 0)), nil }
	r["isNotEmpty"] = func(_ Context, a []any) (any, error) { return value.IsTruthy(arg(a, 0)), nil }
	r["toNumber"] = func(_ Context, a []any) (any, error) { return value.ToNumber(arg(a, 0)), nil }
	r["toInt"] = func(_ Context, a []any) (any, error) { return float64(int64(value.ToNumber(arg(a, 0)))), nil }
	r["toFloat"] = func(_ Context, a []any) (any, error) { return value.ToNumber(arg(a, 0)), nil }
	r["toString"] = func(_ Context, a []any) (any, error) { return value.ToStringValue(arg(a, 0)), nil }
	r["toBoolean"] = func(_ Context, a []any) (any, error) { return value.IsTruthy(arg(a, 0)), nil }
	r["toArray"] = func(_ Context, a []any) (any, error) { return arrOf(arg(a, 0)), nil }
	r["toObject"] = func(_ Context, a []any) (any, error) {
		if o, ok := arg(a, 0).(*value.Object); ok {
			return o, nil
		}
		return value.NewObject(), nil
	}
	r["default"] = func(_ Context, a []any) (any, error) {
		if value.IsTruthy(arg(a, 0)) {
			return arg(a, 0), nil
		}
		return arg(a, 1), nil
	}
	r["coalesce"] = func(_ Context, a []any) (any, error) {
		for _, v := range a {
			if v != nil {
				return v, nil
			}
		}
		return nil, nil
	}
}
