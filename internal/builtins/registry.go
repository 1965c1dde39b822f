// Package builtins implements RS's built-in function library (spec
// §4.8), grouped one file per library the way the teacher's
// internal/interp/builtins_*.go split does.
package builtins

import (
	"time"

	"github.com/retroscript/rs/internal/host"
	"github.com/retroscript/rs/internal/safety"
)

// Context is the slice of interpreter state a builtin needs. The
// interpreter implements this interface; builtins never import the
// interpreter package, which keeps the dependency one-directional
// (interp -> builtins) the way the teacher's builtins depend on
// interp's runtime types but not vice versa.
type Context interface {
	Limits() *safety.Limits
	HostContext() *host.Context
	Emit(line string)
	RunStart() time.Time
	CallStack() []string
	Vars() map[string]any
}

// Func is a built-in's implementation signature. Builtins accept
// loose inputs and coerce per spec §4.8; a non-nil error becomes a
// RuntimeError wrapped with the builtin's name by the interpreter.
type Func func(ctx Context, args []any) (any, error)

// Registry is the name -> implementation table the interpreter
// consults for `call name args...` and bare built-in references.
type Registry map[string]Func

// New builds the full built-in registry, merging every library.
func New() Registry {
	r := make(Registry)
	registerMath(r)
	registerString(r)
	registerArray(r)
	registerObject(r)
	registerType(r)
	registerTime(r)
	registerJSON(r)
	registerDebug(r)
	registerDialog(r)
	registerSystem(r)
	registerTerminal(r)
	return r
}

// Lookup returns the builtin for name and whether it exists.
func (r Registry) Lookup(name string) (Func, bool) {
	f, ok := r[name]
	return f, ok
}

func arg(args []any, i int) any {
	if i < 0 || i >= len(args) {
		return nil
	}
	return args[i]
}
