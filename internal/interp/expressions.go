package interp

import (
	"fmt"
	"strings"

	"github.com/retroscript/rs/internal/ast"
	"github.com/retroscript/rs/internal/environment"
	"github.com/retroscript/rs/internal/rserrors"
	"github.com/retroscript/rs/internal/value"
)

func (i *Interpreter) eval(expr ast.Expression, env *environment.Environment) (any, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Variable:
		v, _ := env.Get(e.Name)
		return v, nil
	case *ast.Binary:
		return i.evalBinary(e, env)
	case *ast.Unary:
		return i.evalUnary(e, env)
	case *ast.Array:
		out := make(value.Array, 0, len(e.Elements))
		for _, el := range e.Elements {
			v, err := i.eval(el, env)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case *ast.Object:
		obj := value.NewObject()
		for idx, key := range e.Keys {
			v, err := i.eval(e.Values[idx], env)
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		return obj, nil
	case *ast.Member:
		base, err := i.eval(e.Object, env)
		if err != nil {
			return nil, err
		}
		return memberGet(base, e.Name), nil
	case *ast.Index:
		base, err := i.eval(e.Collection, env)
		if err != nil {
			return nil, err
		}
		idx, err := i.eval(e.Index, env)
		if err != nil {
			return nil, err
		}
		return indexGet(base, idx), nil
	case *ast.Grouping:
		return i.eval(e.Inner, env)
	case *ast.InterpolatedString:
		return i.evalInterpolated(e, env)
	case *ast.Call:
		return i.evalCall(e.Name, e.Args, env, e.Pos())
	default:
		return nil, fmt.Errorf("interp: unhandled expression type %T", expr)
	}
}

func memberGet(base any, name string) any {
	switch b := base.(type) {
	case *value.Object:
		return b.Get(name)
	default:
		return nil
	}
}

func indexGet(base, idx any) any {
	switch b := base.(type) {
	case value.Array:
		n := int(value.ToNumber(idx))
		if n < 0 {
			n += len(b)
		}
		if n < 0 || n >= len(b) {
			return nil
		}
		return b[n]
	case *value.Object:
		return b.Get(value.ToStringValue(idx))
	default:
		return nil
	}
}

func (i *Interpreter) evalInterpolated(e *ast.InterpolatedString, env *environment.Environment) (any, error) {
	var sb strings.Builder
	for _, part := range e.Parts {
		if part.Expr == nil {
			sb.WriteString(part.Text)
			continue
		}
		v, err := i.eval(part.Expr, env)
		if err != nil {
			return nil, err
		}
		sb.WriteString(value.ToStringValue(v))
	}
	return sb.String(), nil
}

func (i *Interpreter) evalUnary(e *ast.Unary, env *environment.Environment) (any, error) {
	operand, err := i.eval(e.Operand, env)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "-":
		return -value.ToNumber(operand), nil
	case "!":
		return !value.IsTruthy(operand), nil
	default:
		return nil, rserrors.NewRuntimeError(fmt.Sprintf("unknown unary operator %q", e.Op), e.Pos().Line, e.Pos().Column, i.source, nil)
	}
}

// evalBinary implements spec §4.3's operator semantics: && and || are
// short-circuiting and return the selected operand verbatim, + does
// string concatenation when either side is a string, and / and % by
// zero yield 0 rather than erroring.
func (i *Interpreter) evalBinary(e *ast.Binary, env *environment.Environment) (any, error) {
	if e.Op == "&&" || e.Op == "||" {
		left, err := i.eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		truthy := value.IsTruthy(left)
		if e.Op == "&&" && !truthy {
			return left, nil
		}
		if e.Op == "||" && truthy {
			return left, nil
		}
		return i.eval(e.Right, env)
	}

	left, err := i.eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "+":
		if _, ok := left.(string); ok {
			return left.(string) + value.ToStringValue(right), nil
		}
		if _, ok := right.(string); ok {
			return value.ToStringValue(left) + right.(string), nil
		}
		return value.ToNumber(left) + value.ToNumber(right), nil
	case "-":
		return value.ToNumber(left) - value.ToNumber(right), nil
	case "*":
		return value.ToNumber(left) * value.ToNumber(right), nil
	case "/":
		r := value.ToNumber(right)
		if r == 0 {
			return 0.0, nil
		}
		return value.ToNumber(left) / r, nil
	case "%":
		r := value.ToNumber(right)
		if r == 0 {
			return 0.0, nil
		}
		l := value.ToNumber(left)
		return l - r*float64(int64(l/r)), nil
	case "==":
		return looseEqual(left, right), nil
	case "!=":
		return !looseEqual(left, right), nil
	case "<":
		return compare(left, right) < 0, nil
	case ">":
		return compare(left, right) > 0, nil
	case "<=":
		return compare(left, right) <= 0, nil
	case ">=":
		return compare(left, right) >= 0, nil
	default:
		return nil, rserrors.NewRuntimeError(fmt.Sprintf("unknown binary operator %q", e.Op), e.Pos().Line, e.Pos().Column, i.source, nil)
	}
}

// looseEqual implements spec §4.3's "strict (===/!== semantics)"
// comparison operator: type tags must match (numbers compare by
// value, arrays/objects by reference identity, as value.Equal does).
func looseEqual(a, b any) bool {
	return value.Equal(a, b)
}

// compare orders two values numerically if both coerce cleanly as
// numbers-or-bool/null, otherwise lexicographically by string form,
// matching "ordering operators compare numbers numerically and
// strings lexicographically" (spec §4.3).
func compare(a, b any) int {
	_, aIsStr := a.(string)
	_, bIsStr := b.(string)
	if aIsStr || bIsStr {
		as, bs := value.ToStringValue(a), value.ToStringValue(b)
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	}
	an, bn := value.ToNumber(a), value.ToNumber(b)
	switch {
	case an < bn:
		return -1
	case an > bn:
		return 1
	default:
		return 0
	}
}
