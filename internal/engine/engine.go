// Package engine implements ScriptEngine, the embedder-facing
// orchestration layer over internal/interp (spec §4.6): lex→parse→
// execute, run-lifecycle callbacks, and the single-flight "Script
// already running" guard. It is grounded on the teacher's
// pkg/dwscript facade (deleted as a source file but visible through
// its test contract: New(options...), engine.Compile/Run) folded
// together with cmd/dwscript/cmd/run.go's pipeline.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/retroscript/rs/internal/ast"
	"github.com/retroscript/rs/internal/builtins"
	"github.com/retroscript/rs/internal/host"
	"github.com/retroscript/rs/internal/interp"
	"github.com/retroscript/rs/internal/parser"
	"github.com/retroscript/rs/internal/rserrors"
	"github.com/retroscript/rs/internal/safety"
	"github.com/retroscript/rs/internal/value"
)

// RunOptions configures a single Run call (spec §4.6 / §6).
type RunOptions struct {
	// Timeout overrides the default execution timeout for this run
	// only. Zero keeps safety.DefaultExecutionTimeout.
	Timeout time.Duration
	// Variables pre-populates the global environment before execution.
	Variables map[string]any
	OnOutput  func(line string)
	OnError   func(err *rserrors.ScriptError)
	// OnVariables, if set, is called once after the run with a
	// snapshot of the global environment.
	OnVariables func(vars map[string]any)
}

// Result is the `{ success, result | error, variables }` shape spec
// §4.6 describes for ScriptEngine.run.
type Result struct {
	Success   bool
	Value     any
	Error     *rserrors.ScriptError
	Variables map[string]any
}

// ParseResult is the `{ success, ast?, error? }` shape spec §6
// describes for ScriptEngine.parse.
type ParseResult struct {
	Success bool
	AST     []ast.Statement
	Error   *rserrors.ScriptError
}

// ScriptEngine wires one interpreter instance to a host context and
// enforces that only one run is in flight at a time (spec §4.6: a
// second concurrent run() must fail fast rather than queue or panic).
type ScriptEngine struct {
	mu      sync.Mutex
	running bool

	interp *interp.Interpreter
	host   *host.Context
}

// New wires a fresh interpreter against an optional host context
// (spec §4.6's `initialize(context?)`; absence of a context is
// tolerated, matching every host capability's own nil-degrade rule).
func New(hostCtx *host.Context) *ScriptEngine {
	return &ScriptEngine{
		interp: interp.New(hostCtx),
		host:   hostCtx,
	}
}

// Stop signals the running interpreter to unwind cooperatively.
func (e *ScriptEngine) Stop() { e.interp.Stop() }

// Reset disposes interpreter state (functions, handlers, globals) and
// rebuilds a clean global scope without tearing down the host wiring.
func (e *ScriptEngine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.interp.Reset()
}

// DefineFunction registers a host-provided function callable from
// scripts under name, with the same dispatch precedence as any other
// built-in (spec §6's `defineFunction(name, fn)`).
func (e *ScriptEngine) DefineFunction(name string, fn builtins.Func) {
	e.interp.DefineNative(name, fn)
}

// GetVariables returns a snapshot of the current global environment.
func (e *ScriptEngine) GetVariables() map[string]any {
	out := make(map[string]any, len(e.interp.Global.Variables()))
	for k, v := range e.interp.Global.Variables() {
		out[k] = v
	}
	return out
}

// Parse lexes and parses source without executing it, for syntax
// checking (spec §4.6/§6).
func (e *ScriptEngine) Parse(source string) ParseResult {
	stmts, errs := parser.Parse(source)
	if len(errs) > 0 {
		pe := errs[0]
		return ParseResult{Success: false, Error: rserrors.NewParseError(pe.Message, pe.Line, pe.Column, source, pe.Hint)}
	}
	return ParseResult{Success: true, AST: stmts}
}

// Run implements spec §4.6's run(source, options?). A run already in
// flight causes this call to fail immediately with "Script already
// running" rather than queuing or blocking.
func (e *ScriptEngine) Run(source string, opts RunOptions) Result {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return Result{Success: false, Error: rserrors.NewRuntimeError("Script already running", 0, 0, source, nil)}
	}
	e.running = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	parsed := e.Parse(source)
	if !parsed.Success {
		if opts.OnError != nil {
			opts.OnError(parsed.Error)
		}
		e.emitScriptEvent("script:error", parsed.Error)
		return Result{Success: false, Error: parsed.Error, Variables: e.GetVariables()}
	}

	for k, v := range opts.Variables {
		e.interp.Global.Define(k, v)
	}

	timeout := safety.DefaultExecutionTimeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	if opts.OnOutput != nil {
		e.interp.OnOutput = opts.OnOutput
	}
	if opts.OnError != nil {
		e.interp.OnError = opts.OnError
	}

	e.emitScriptStart()
	result, scriptErr := e.interp.Run(parsed.AST, source, timeout)

	vars := e.GetVariables()
	if opts.OnVariables != nil {
		opts.OnVariables(vars)
	}

	if scriptErr != nil {
		e.emitScriptEvent("script:error", scriptErr)
		e.emitScriptComplete(false)
		return Result{Success: false, Error: scriptErr, Variables: vars}
	}
	e.emitScriptComplete(true)
	return Result{Success: true, Value: result, Variables: vars}
}

// RunFile reads source via the host FileSystemManager and runs it
// (spec §6's `runFile(path, options)` — fails if the capability or
// the file itself is missing).
func (e *ScriptEngine) RunFile(ctx context.Context, path string, opts RunOptions) Result {
	if e.host == nil || e.host.FileSystemManager == nil {
		return Result{Success: false, Error: rserrors.NewRuntimeError("runFile requires a FileSystemManager host capability", 0, 0, "", nil)}
	}
	content, err := e.host.FileSystemManager.ReadFile(ctx, path)
	if err != nil {
		return Result{Success: false, Error: rserrors.NewRuntimeError(fmt.Sprintf("failed to read %s: %s", path, err.Error()), 0, 0, "", nil)}
	}
	return e.Run(content, opts)
}

func (e *ScriptEngine) emitScriptStart() {
	if e.host == nil || e.host.EventBus == nil {
		return
	}
	e.host.EventBus.Emit("script:start", value.NewObject())
}

func (e *ScriptEngine) emitScriptComplete(success bool) {
	if e.host == nil || e.host.EventBus == nil {
		return
	}
	payload := value.NewObject()
	payload.Set("success", success)
	e.host.EventBus.Emit("script:complete", payload)
}

func (e *ScriptEngine) emitScriptEvent(name string, scriptErr *rserrors.ScriptError) {
	if e.host == nil || e.host.EventBus == nil || scriptErr == nil {
		return
	}
	payload := value.NewObject()
	payload.Set("name", string(scriptErr.Name))
	payload.Set("message", scriptErr.Message)
	payload.Set("line", float64(scriptErr.Line))
	e.host.EventBus.Emit(name, payload)
}
