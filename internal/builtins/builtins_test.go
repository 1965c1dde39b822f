package builtins

import (
	"time"

	"github.com/retroscript/rs/internal/host"
	"github.com/retroscript/rs/internal/safety"
)

// fakeContext is a minimal Context implementation for exercising
// builtins in isolation, without constructing a full interpreter.
type fakeContext struct {
	limits   *safety.Limits
	host     *host.Context
	emitted  []string
	start    time.Time
	stack    []string
	vars     map[string]any
}

func newFakeContext() *fakeContext {
	return &fakeContext{limits: safety.New(), start: time.Now(), vars: map[string]any{}}
}

func (f *fakeContext) Limits() *safety.Limits      { return f.limits }
func (f *fakeContext) HostContext() *host.Context  { return f.host }
func (f *fakeContext) Emit(line string)            { f.emitted = append(f.emitted, line) }
func (f *fakeContext) RunStart() time.Time         { return f.start }
func (f *fakeContext) CallStack() []string         { return f.stack }
func (f *fakeContext) Vars() map[string]any        { return f.vars }
