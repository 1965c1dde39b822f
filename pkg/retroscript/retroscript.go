// Package retroscript is the stable embedder-facing surface over
// internal/engine and internal/host, grounded on the teacher's
// pkg/dwscript public-API pattern (a functional-options `New`
// returning an `Engine`, visible through that package's own test
// suite since its implementation file was filtered from the
// retrieval pack): `New(options...)`, `engine.Eval`/`Run`,
// `engine.SetOutput`, `engine.RegisterFunction`.
package retroscript

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/retroscript/rs/internal/builtins"
	"github.com/retroscript/rs/internal/engine"
	"github.com/retroscript/rs/internal/host"
	"github.com/retroscript/rs/internal/rserrors"
)

// Re-exported host capability types, so an embedder never has to
// import internal/host directly.
type (
	EventBus          = host.EventBus
	CommandBus        = host.CommandBus
	FileSystemManager = host.FileSystemManager
	AppRegistry       = host.AppRegistry
	WindowManager     = host.WindowManager
	StateManager      = host.StateManager
	StorageManager    = host.StorageManager
	App               = host.App
	CommandResult     = host.CommandResult
)

// NativeFunc is the signature a host-registered function must satisfy
// (re-exported builtins.Func, spec §6's `defineFunction(name, fn)`).
type NativeFunc = builtins.Func

// RunOptions, Result, ParseResult, and ScriptError are re-exported so
// callers never import internal/engine or internal/rserrors directly.
type (
	RunOptions   = engine.RunOptions
	Result       = engine.Result
	ParseResult  = engine.ParseResult
	ScriptError  = rserrors.ScriptError
	AutoexecInfo = engine.AutoexecResult
)

// Engine is the public RS engine: one instance per running script
// host, wrapping internal/engine.ScriptEngine.
type Engine struct {
	inner  *engine.ScriptEngine
	output io.Writer
}

// Option configures an Engine at construction time (teacher's
// functional-options convention — WithTypeCheck, WithMaxCallDepth,
// etc. in pkg/dwscript).
type Option func(*config)

type config struct {
	host *host.Context
}

// WithHost supplies the optional host capability bundle (spec §6's
// initialize(context)). Omitting it is valid: every capability
// degrades independently when absent.
func WithHost(ctx *host.Context) Option {
	return func(c *config) { c.host = ctx }
}

// New constructs an Engine, wiring a fresh interpreter and built-in
// registry against whatever host capabilities were supplied.
func New(opts ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Engine{inner: engine.New(cfg.host)}, nil
}

// SetOutput redirects script print/log output to w instead of (or in
// addition to) any RunOptions.OnOutput callback, matching the
// teacher's engine.SetOutput(io.Writer) convenience.
func (e *Engine) SetOutput(w io.Writer) { e.output = w }

// Run executes source against the engine's current global scope.
func (e *Engine) Run(source string, opts RunOptions) Result {
	if e.output != nil {
		userOnOutput := opts.OnOutput
		opts.OnOutput = func(line string) {
			fmt.Fprintln(e.output, line)
			if userOnOutput != nil {
				userOnOutput(line)
			}
		}
	}
	return e.inner.Run(source, opts)
}

// RunFile reads source via the host FileSystemManager and runs it.
func (e *Engine) RunFile(ctx context.Context, path string, opts RunOptions) Result {
	return e.inner.RunFile(ctx, path, opts)
}

// Parse lexes and parses source without executing it.
func (e *Engine) Parse(source string) ParseResult { return e.inner.Parse(source) }

// Stop signals the running script to unwind cooperatively.
func (e *Engine) Stop() { e.inner.Stop() }

// Reset disposes interpreter state and rebuilds a clean global scope.
func (e *Engine) Reset() { e.inner.Reset() }

// RegisterFunction is the teacher's FFI registration name, aliased to
// DefineFunction (spec §6): name becomes callable as `call name args…`.
func (e *Engine) RegisterFunction(name string, fn NativeFunc) { e.inner.DefineFunction(name, fn) }

// DefineFunction is spec §6's own naming for RegisterFunction.
func (e *Engine) DefineFunction(name string, fn NativeFunc) { e.inner.DefineFunction(name, fn) }

// GetVariables returns a snapshot of the current global environment.
func (e *Engine) GetVariables() map[string]any { return e.inner.GetVariables() }

// Autoexec runs the host's boot-time script, if one is found (spec §4.7).
func (e *Engine) Autoexec(ctx context.Context, bootTime time.Time) AutoexecInfo {
	return e.inner.Autoexec(ctx, bootTime)
}
