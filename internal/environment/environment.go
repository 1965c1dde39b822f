// Package environment implements RS's lexical scope chain.
package environment

import (
	"strings"

	"github.com/retroscript/rs/internal/value"
)

// Environment is one link in the scope chain: a parent pointer plus an
// insertion-ordered variable map for the current scope.
type Environment struct {
	parent *Environment
	vars   map[string]any
	order  []string
}

// New creates a root environment with no parent.
func New() *Environment {
	return &Environment{vars: make(map[string]any)}
}

// NewChild creates a new scope extending this one, for a block,
// function frame, or loop invocation.
func (e *Environment) NewChild() *Environment {
	return &Environment{parent: e, vars: make(map[string]any)}
}

// Get resolves a possibly dotted name ("a.b.c") by looking up the root
// identifier through the scope chain, then walking native property
// access on the resolved value. Missing names and intermediate nils
// resolve to nil (spec §3's "undefined/null" policy) rather than
// erroring; the bool reports whether the root identifier is bound
// anywhere in the chain, for callers that need to distinguish "unbound
// name" from "bound to null".
func (e *Environment) Get(name string) (any, bool) {
	root, rest := splitDotted(name)
	env, found := e.lookupOwner(root)
	if !found {
		return nil, false
	}
	val := env.vars[root]
	if rest == "" {
		return val, true
	}
	return walkPath(val, rest), true
}

// lookupOwner finds the nearest scope in the chain that owns `name`.
func (e *Environment) lookupOwner(name string) (*Environment, bool) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			return env, true
		}
	}
	return nil, false
}

// Set assigns a top-level (non-dotted) variable, walking up the chain
// and writing in the nearest scope that already owns the name; if none
// owns it, it writes in the current scope (spec §3's dynamic-hoisting
// rule). Dotted assignment targets are not supported by the language
// (spec's Set statement only ever names a bare $variable).
func (e *Environment) Set(name string, value any) {
	if env, ok := e.lookupOwner(name); ok {
		env.define(name, value)
		return
	}
	e.define(name, value)
}

// Define binds a name in this scope specifically, used for function
// parameters and loop/foreach index variables which always bind in
// the frame the construct introduces, never an outer one.
func (e *Environment) Define(name string, value any) {
	e.define(name, value)
}

func (e *Environment) define(name string, value any) {
	if _, exists := e.vars[name]; !exists {
		e.order = append(e.order, name)
	}
	e.vars[name] = value
}

// Variables returns a flat snapshot of every binding visible from this
// scope, innermost wins (global bindings the engine exposes via
// getVariables()/onVariables). The result is a Go map, so it carries
// no key order.
func (e *Environment) Variables() map[string]any {
	chain := chainToRoot(e)
	out := make(map[string]any)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, name := range chain[i].order {
			out[name] = chain[i].vars[name]
		}
	}
	return out
}

func chainToRoot(e *Environment) []*Environment {
	var chain []*Environment
	for env := e; env != nil; env = env.parent {
		chain = append(chain, env)
	}
	return chain
}

func splitDotted(name string) (root, rest string) {
	idx := strings.IndexByte(name, '.')
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}

// walkPath walks a dotted property path over a resolved value,
// tolerating nil at any step by yielding nil (spec §3 / §4.3: Member
// and Index "tolerate null by returning undefined").
func walkPath(val any, path string) any {
	cur := val
	for _, seg := range strings.Split(path, ".") {
		if cur == nil {
			return nil
		}
		obj, ok := cur.(*value.Object)
		if !ok {
			return nil
		}
		cur = obj.Get(seg)
	}
	return cur
}
