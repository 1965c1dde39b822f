// Package value implements RS's dynamic value domain (spec §3):
// null, boolean, number, string, array, and insertion-ordered object,
// plus the coercion and stringification rules the interpreter and
// builtins share.
package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// Array is RS's array value: an ordered, mutable slice of values.
type Array []any

// Object is RS's object value: an insertion-ordered string-keyed map.
// Equality and identity are by reference, matching spec §3; callers
// compare two *Object pointers with ==, never field-by-field.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty, insertion-ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set inserts or updates a key, preserving first-insertion order.
func (o *Object) Set(key string, val any) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = val
}

// Get returns the value for key, or nil if absent.
func (o *Object) Get(key string) any {
	return o.values[key]
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Delete removes key, if present.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Clone returns a shallow copy with its own key order and map.
func (o *Object) Clone() *Object {
	c := NewObject()
	for _, k := range o.keys {
		c.Set(k, o.values[k])
	}
	return c
}

// IsTruthy implements spec §4.3's truthiness rule: false, null, 0, "",
// [], and absent values are falsy; everything else truthy.
func IsTruthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case Array:
		return len(val) != 0
	case *Object:
		return val != nil
	default:
		return true
	}
}

// ToNumber coerces a value to a float64 for arithmetic, per the loose
// coercion builtins and operators rely on. Non-numeric strings and
// unsupported types coerce to 0 rather than erroring (spec's "failures
// return neutral values" rule for builtins; the same leniency is used
// by arithmetic operators internally).
func ToNumber(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case bool:
		if val {
			return 1
		}
		return 0
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ToStringValue renders a value using the interpolation stringify
// rule of spec §4.3: null -> "null", strings verbatim, arrays/objects
// via JSON, everything else via default conversion.
func ToStringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(val)
	case Array, *Object:
		b, err := json.Marshal(ToJSONCompatible(v))
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ToJSONCompatible converts an RS value tree into plain Go
// maps/slices/scalars suitable for encoding/json or gjson/sjson.
func ToJSONCompatible(v any) any {
	switch val := v.(type) {
	case Array:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = ToJSONCompatible(e)
		}
		return out
	case *Object:
		out := make(map[string]any, val.Len())
		for _, k := range val.Keys() {
			out[k] = ToJSONCompatible(val.Get(k))
		}
		return out
	default:
		return val
	}
}

// FromJSONCompatible converts decoded JSON (maps/slices/scalars) back
// into RS values. A decoded map carries no key order, so object keys
// are inserted in sorted order.
func FromJSONCompatible(v any) any {
	switch val := v.(type) {
	case []any:
		out := make(Array, len(val))
		for i, e := range val {
			out[i] = FromJSONCompatible(e)
		}
		return out
	case map[string]any:
		obj := NewObject()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			obj.Set(k, FromJSONCompatible(val[k]))
		}
		return obj
	case json.Number:
		f, _ := val.Float64()
		return f
	default:
		return val
	}
}

// TypeOf implements the `typeof` builtin's tag set.
func TypeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case Array:
		return "array"
	case *Object:
		return "object"
	default:
		return "undefined"
	}
}

// Equal implements spec §3's strict-by-type-then-value equality;
// arrays and objects compare by reference identity.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		return ok && sameArrayIdentity(av, bv)
	case *Object:
		bv, ok := b.(*Object)
		return ok && av == bv
	default:
		return false
	}
}

// sameArrayIdentity reports whether two Array values share the same
// backing storage, the reference-identity spec §3 requires.
func sameArrayIdentity(a, b Array) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == 0 && len(b) == 0 && sameHeader(a, b)
	}
	return &a[0] == &b[0]
}

func sameHeader(a, b Array) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
