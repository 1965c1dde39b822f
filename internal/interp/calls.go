package interp

import (
	"fmt"

	"github.com/retroscript/rs/internal/ast"
	"github.com/retroscript/rs/internal/environment"
	"github.com/retroscript/rs/internal/rserrors"
	"github.com/retroscript/rs/internal/safety"
	"github.com/retroscript/rs/internal/value"
)

// evalCall implements spec §4.3's `call name args…` dispatch: built-in
// first, then user function (with a fresh frame extending the
// closure), else a ScriptReferenceError.
func (i *Interpreter) evalCall(name string, argExprs []ast.Expression, env *environment.Environment, pos ast.Position) (any, error) {
	args := make([]any, 0, len(argExprs))
	for _, a := range argExprs {
		v, err := i.eval(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	if fn, ok := i.builtins.Lookup(name); ok {
		v, err := fn(i, args)
		if err != nil {
			return nil, rserrors.NewRuntimeError(
				fmt.Sprintf("Error in function '%s': %s", name, err.Error()),
				pos.Line, pos.Column, i.source, append([]string(nil), i.callStack...))
		}
		return v, nil
	}

	if fn, ok := i.functions[name]; ok {
		return i.callUserFunction(name, fn, args, pos)
	}

	return nil, rserrors.NewReferenceError(name, pos.Line, pos.Column, i.source)
}

func (i *Interpreter) callUserFunction(name string, fn *function, args []any, pos ast.Position) (any, error) {
	if err := i.limits.CheckRecursionDepth(len(i.callStack)+1, name); err != nil {
		maxDepth := i.limits.MaxRecursionDepth
		if re, ok := err.(*safety.RecursionError); ok {
			maxDepth = re.MaxDepth
		}
		return nil, rserrors.NewRecursionError(maxDepth, name, pos.Line, pos.Column, i.source)
	}

	frame := fn.Closure.NewChild()
	for idx, param := range fn.Params {
		var v any
		if idx < len(args) {
			v = args[idx]
		}
		frame.Define(param, v)
	}

	i.callStack = append(i.callStack, name)
	sig, err := i.execBlock(fn.Body.Statements, frame)
	i.callStack = i.callStack[:len(i.callStack)-1]
	if err != nil {
		return nil, err
	}
	if sig.kind == signalReturn {
		return sig.value, nil
	}
	return nil, nil
}

// execOn implements `on eventName { body }`: registers a handler with
// the host bus that creates a fresh scope binding $event to the
// payload. Redefining the same event name unsubscribes the prior
// handler first (spec §3's event handler registry).
func (i *Interpreter) execOn(s *ast.On, env *environment.Environment) error {
	if i.host == nil || i.host.EventBus == nil {
		return nil
	}
	if existing, ok := i.handlers[s.EventName]; ok && existing.unsubscribe != nil {
		existing.unsubscribe()
	}
	if err := i.limits.CheckEventHandlerCount(len(i.handlers) + 1); err != nil {
		return rserrors.NewRuntimeError(err.Error(), s.Pos().Line, s.Pos().Column, i.source, nil)
	}

	body := s.Body
	unsubscribe := i.host.EventBus.On(s.EventName, func(payload *value.Object) {
		handlerEnv := i.Global.NewChild()
		handlerEnv.Define("event", payload)
		if _, err := i.execBlock(body.Statements, handlerEnv); err != nil && !isStopRequested(err) {
			if i.OnError != nil {
				i.OnError(i.toScriptError(err))
			}
		}
	})
	i.handlers[s.EventName] = &eventHandler{Body: body, unsubscribe: unsubscribe}
	return nil
}

// execEmit implements `emit eventName key=expr*`, forwarding the
// evaluated payload object to the host bus.
func (i *Interpreter) execEmit(s *ast.Emit, env *environment.Environment) error {
	payload, err := i.evalKeyValues(s.Payload, env)
	if err != nil {
		return err
	}
	if i.host != nil && i.host.EventBus != nil {
		i.host.EventBus.Emit(s.EventName, payload)
	}
	return nil
}

func (i *Interpreter) evalKeyValues(kvs []ast.KeyValue, env *environment.Environment) (*value.Object, error) {
	obj := value.NewObject()
	for _, kv := range kvs {
		v, err := i.eval(kv.Value, env)
		if err != nil {
			return nil, err
		}
		obj.Set(kv.Key, v)
	}
	return obj, nil
}
