package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroscript/rs/internal/builtins"
	"github.com/retroscript/rs/internal/host"
	"github.com/retroscript/rs/internal/value"
)

// fakeBus is a minimal in-memory EventBus recording every Emit call,
// enough to assert on script:* / autoexec:* events without a real host.
type fakeBus struct {
	mu      sync.Mutex
	emitted []string
}

func (b *fakeBus) Emit(name string, _ *value.Object) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.emitted = append(b.emitted, name)
}
func (b *fakeBus) On(string, func(*value.Object)) func()                       { return func() {} }
func (b *fakeBus) Off(string, func(*value.Object))                             {}
func (b *fakeBus) Request(context.Context, string, *value.Object, time.Duration) (*value.Object, error) {
	return nil, nil
}

func (b *fakeBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.emitted...)
}

func TestRunSuccessEmitsLifecycleEvents(t *testing.T) {
	bus := &fakeBus{}
	e := New(&host.Context{EventBus: bus})

	var out []string
	res := e.Run(`print 1 + 1`, RunOptions{OnOutput: func(l string) { out = append(out, l) }})

	require.True(t, res.Success)
	assert.Equal(t, []string{"2"}, out)
	assert.Equal(t, []string{"script:start", "script:output", "script:complete"}, bus.names())
}

func TestRunParseErrorReportsAndEmits(t *testing.T) {
	bus := &fakeBus{}
	e := New(&host.Context{EventBus: bus})

	res := e.Run(`if then {`, RunOptions{})
	require.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Contains(t, bus.names(), "script:error")
}

func TestRunRejectsReentrantCall(t *testing.T) {
	e := New(nil)
	e.interp.OnOutput = nil

	started := make(chan struct{})
	release := make(chan struct{})
	e.DefineFunction("blockUntilReleased", func(_ builtins.Context, _ []any) (any, error) {
		close(started)
		<-release
		return nil, nil
	})

	go e.Run(`call blockUntilReleased`, RunOptions{})
	<-started

	res := e.Run(`print 1`, RunOptions{})
	assert.False(t, res.Success)
	assert.Equal(t, "Script already running", res.Error.Message)

	close(release)
}

func TestRunPrePopulatesVariables(t *testing.T) {
	e := New(nil)
	var out []string
	res := e.Run(`print $greeting`, RunOptions{
		Variables: map[string]any{"greeting": "hi"},
		OnOutput:  func(l string) { out = append(out, l) },
	})
	require.True(t, res.Success)
	assert.Equal(t, []string{"hi"}, out)
}

func TestGetVariablesSnapshotsGlobalScope(t *testing.T) {
	e := New(nil)
	res := e.Run(`set $x = 42`, RunOptions{})
	require.True(t, res.Success)
	assert.Equal(t, 42.0, res.Variables["x"])
	assert.Equal(t, 42.0, e.GetVariables()["x"])
}

func TestParseReturnsASTWithoutExecuting(t *testing.T) {
	e := New(nil)
	var out []string
	e.interp.OnOutput = func(l string) { out = append(out, l) }

	pr := e.Parse(`print "never runs"`)
	require.True(t, pr.Success)
	require.Len(t, pr.AST, 1)
	assert.Empty(t, out)
}

func TestParseSurfacesParseError(t *testing.T) {
	e := New(nil)
	pr := e.Parse(`if then {`)
	assert.False(t, pr.Success)
	require.NotNil(t, pr.Error)
	assert.Equal(t, "ParseError", string(pr.Error.Name))
}

func TestResetClearsFunctionsAndGlobals(t *testing.T) {
	e := New(nil)
	e.Run(`set $x = 1
def f() { return 1 }`, RunOptions{})
	e.Reset()

	var out []string
	res := e.Run(`print $x`, RunOptions{OnOutput: func(l string) { out = append(out, l) }})
	require.True(t, res.Success)
	assert.Equal(t, []string{"null"}, out)
}

func TestDefineFunctionIsCallableFromScript(t *testing.T) {
	e := New(nil)
	e.DefineFunction("double", func(_ builtins.Context, args []any) (any, error) {
		return value.ToNumber(args[0]) * 2, nil
	})

	var out []string
	res := e.Run(`print call double 21`, RunOptions{OnOutput: func(l string) { out = append(out, l) }})
	require.True(t, res.Success)
	assert.Equal(t, []string{"42"}, out)
}
