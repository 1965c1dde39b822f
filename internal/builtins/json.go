package builtins

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/retroscript/rs/internal/value"
)

// registerJSON wires spec §4.8's JSON library onto tidwall/gjson and
// tidwall/sjson rather than encoding/json's map-based decode, so key
// order from the source document survives the round trip into RS's
// insertion-ordered Object.
func registerJSON(r Registry) {
	r["toJSON"] = func(c Context, a []any) (any, error) {
		b, err := json.Marshal(value.ToJSONCompatible(arg(a, 0)))
		if err != nil {
			return "", nil
		}
		return c.Limits().ClampStringLength(string(b)), nil
	}
	r["prettyJSON"] = func(c Context, a []any) (any, error) {
		b, err := json.MarshalIndent(value.ToJSONCompatible(arg(a, 0)), "", "  ")
		if err != nil {
			return "", nil
		}
		return c.Limits().ClampStringLength(string(b)), nil
	}
	r["fromJSON"] = func(_ Context, a []any) (any, error) {
		text := str(a, 0)
		if !gjson.Valid(text) {
			return nil, nil
		}
		return gjsonToValue(gjson.Parse(text)), nil
	}
	r["jsonGet"] = func(_ Context, a []any) (any, error) {
		res := gjson.Get(str(a, 0), str(a, 1))
		if !res.Exists() {
			return nil, nil
		}
		return gjsonToValue(res), nil
	}
	r["jsonSet"] = func(c Context, a []any) (any, error) {
		out, err := sjson.Set(str(a, 0), str(a, 1), value.ToJSONCompatible(arg(a, 2)))
		if err != nil {
			return str(a, 0), nil
		}
		return c.Limits().ClampStringLength(out), nil
	}
}

func gjsonToValue(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return r.Num
	case gjson.String:
		return r.Str
	case gjson.JSON:
		if r.IsArray() {
			out := value.Array{}
			r.ForEach(func(_, v gjson.Result) bool {
				out = append(out, gjsonToValue(v))
				return true
			})
			return out
		}
		out := value.NewObject()
		r.ForEach(func(k, v gjson.Result) bool {
			out.Set(k.String(), gjsonToValue(v))
			return true
		})
		return out
	default:
		return nil
	}
}
