// Package interp implements RS's tree-walking interpreter (spec §4.3):
// statement and expression evaluation, control flow, user functions
// and closures, event handler dispatch, and the host action
// statements, all against the lexical scope chain of
// internal/environment and the limits of internal/safety.
package interp

import (
	"time"

	"github.com/retroscript/rs/internal/ast"
	"github.com/retroscript/rs/internal/builtins"
	"github.com/retroscript/rs/internal/environment"
	"github.com/retroscript/rs/internal/host"
	"github.com/retroscript/rs/internal/rserrors"
	"github.com/retroscript/rs/internal/safety"
	"github.com/retroscript/rs/internal/value"
)

// signalKind is the control-flow signal the statement executor
// threads back up through nested blocks (spec §4.3).
type signalKind int

const (
	signalNone signalKind = iota
	signalBreak
	signalContinue
	signalReturn
)

type signal struct {
	kind  signalKind
	value any
}

var noSignal = signal{kind: signalNone}

// function is a user-defined RS function: parameters, body, and the
// environment it closed over at `def` time (spec §3's User function).
type function struct {
	Params []string
	Body   *ast.Block
	Closure *environment.Environment
}

// eventHandler is one `on` registration: the compiled body plus the
// host unsubscribe hook so a redefinition can detach the prior one.
type eventHandler struct {
	Body        *ast.Block
	unsubscribe func()
}

// Interpreter holds all process-wide state for one engine run: the
// global scope, user functions, event handlers, and the host/limits
// collaborators. It implements builtins.Context so the registry can
// call back into interpreter state without importing this package.
type Interpreter struct {
	Global   *environment.Environment
	host     *host.Context
	limits   *safety.Limits
	builtins builtins.Registry

	functions map[string]*function
	handlers  map[string]*eventHandler

	callStack []string
	source    string

	stopped  bool
	runStart time.Time

	OnOutput func(line string)
	OnError  func(err *rserrors.ScriptError)
}

// New creates an interpreter with an empty global scope, the full
// built-in registry, and the given host capabilities (nilable per
// capability, per spec §6).
func New(hostCtx *host.Context) *Interpreter {
	return &Interpreter{
		Global:    environment.New(),
		host:      hostCtx,
		limits:    safety.New(),
		builtins:  builtins.New(),
		functions: make(map[string]*function),
		handlers:  make(map[string]*eventHandler),
	}
}

// --- builtins.Context -----------------------------------------------------

func (i *Interpreter) Limits() *safety.Limits     { return i.limits }
func (i *Interpreter) HostContext() *host.Context { return i.host }
func (i *Interpreter) RunStart() time.Time        { return i.runStart }
func (i *Interpreter) CallStack() []string        { return i.callStack }
func (i *Interpreter) Vars() map[string]any       { return i.Global.Variables() }

func (i *Interpreter) Emit(line string) {
	if i.OnOutput != nil {
		i.OnOutput(line)
	}
	if i.host != nil && i.host.EventBus != nil {
		payload := value.NewObject()
		payload.Set("line", line)
		i.host.EventBus.Emit("script:output", payload)
	}
}

// SetLimits replaces the safety configuration. The per-run timeout is
// not set here; the engine passes it to Run.
func (i *Interpreter) SetLimits(l *safety.Limits) { i.limits = l }

// DefineNative registers a host-provided function under the builtin
// dispatch table, giving `engine.ScriptEngine.DefineFunction` the same
// call-site precedence as any other built-in (spec §6's
// `defineFunction(name, fn)`).
func (i *Interpreter) DefineNative(name string, fn builtins.Func) { i.builtins[name] = fn }

// Stop requests cooperative cancellation; checked between statements
// and loop iterations (spec §5).
func (i *Interpreter) Stop() { i.stopped = true }

// Reset clears functions, handlers, and the global scope, disposing
// any event subscriptions held with the host bus.
func (i *Interpreter) Reset() {
	for _, h := range i.handlers {
		if h.unsubscribe != nil {
			h.unsubscribe()
		}
	}
	i.Global = environment.New()
	i.functions = make(map[string]*function)
	i.handlers = make(map[string]*eventHandler)
	i.stopped = false
}

// Run executes a parsed program against the global scope. timeout<=0
// disables the timeout check, matching Limits.StartExecution.
func (i *Interpreter) Run(stmts []ast.Statement, source string, timeout time.Duration) (any, *rserrors.ScriptError) {
	i.source = source
	i.stopped = false
	i.runStart = time.Now()
	i.limits.StartExecution(timeout)
	defer i.limits.StopExecution()

	sig, err := i.execBlock(stmts, i.Global)
	if err != nil {
		if isStopRequested(err) {
			return nil, nil
		}
		return nil, i.toScriptError(err)
	}
	if sig.kind == signalReturn {
		return sig.value, nil
	}
	return nil, nil
}

func (i *Interpreter) toScriptError(err error) *rserrors.ScriptError {
	if se, ok := err.(*rserrors.ScriptError); ok {
		return se
	}
	return rserrors.NewRuntimeError(err.Error(), 0, 0, i.source, append([]string(nil), i.callStack...))
}

// checkCancel raises a timeout/stop error if the run should halt now.
// Called between every statement and on every loop iteration (spec §4.4/§5).
func (i *Interpreter) checkCancel(pos ast.Position) error {
	if i.stopped {
		return &stopRequested{}
	}
	if err := i.limits.CheckTimeout(); err != nil {
		to, _ := err.(*safety.TimeoutError)
		timeout := i.limits.CurrentTimeout.String()
		if to != nil {
			timeout = to.Timeout.String()
		}
		return rserrors.NewTimeoutError(timeout, pos.Line, pos.Column, i.source)
	}
	return nil
}

// stopRequested is an internal sentinel distinguishing a user-initiated
// Stop() from every other unwind; it is swallowed at the Run boundary
// rather than reported as a script error.
type stopRequested struct{}

func (*stopRequested) Error() string { return "script stopped" }

func isStopRequested(err error) bool {
	_, ok := err.(*stopRequested)
	return ok
}
