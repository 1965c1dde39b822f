package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroscript/rs/internal/host"
)

// fakeFS is a minimal in-memory FileSystemManager for autoexec probing.
type fakeFS struct {
	files map[string]string
}

func (f *fakeFS) ReadFile(_ context.Context, path string) (string, error) {
	if c, ok := f.files[path]; ok {
		return c, nil
	}
	return "", assert.AnError
}
func (f *fakeFS) WriteFile(context.Context, string, string) error { return nil }
func (f *fakeFS) Mkdir(context.Context, string) error             { return nil }
func (f *fakeFS) Delete(context.Context, string) error            { return nil }
func (f *fakeFS) Exists(_ context.Context, path string) (bool, error) {
	_, ok := f.files[path]
	return ok, nil
}
func (f *fakeFS) ListDirectory(context.Context, string) ([]string, error) { return nil, nil }

func TestAutoexecFindsVirtualPathWhenNoRealFile(t *testing.T) {
	bus := &fakeBus{}
	fs := &fakeFS{files: map[string]string{
		"/home/autoexec.retro": `print "booted"`,
	}}
	e := New(&host.Context{EventBus: bus, FileSystemManager: fs})

	var out []string
	e.interp.OnOutput = func(l string) { out = append(out, l) }

	res := e.Autoexec(context.Background(), time.Unix(0, 0))
	require.True(t, res.Found)
	assert.Equal(t, "/home/autoexec.retro", res.Path)
	assert.True(t, res.Result.Success)
	assert.Equal(t, []string{"booted"}, out)
	assert.Contains(t, bus.names(), "autoexec:start")
	assert.Contains(t, bus.names(), "autoexec:complete")
}

func TestAutoexecPreBindsAutoexecAndBootTime(t *testing.T) {
	fs := &fakeFS{files: map[string]string{
		"/system/autoexec.retro": `print $AUTOEXEC
print $BOOT_TIME`,
	}}
	e := New(&host.Context{FileSystemManager: fs})

	var out []string
	e.interp.OnOutput = func(l string) { out = append(out, l) }

	boot := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	res := e.Autoexec(context.Background(), boot)
	require.True(t, res.Found)
	require.True(t, res.Result.Success)
	require.Len(t, out, 2)
	assert.Equal(t, "true", out[0])
	assert.Equal(t, boot.Format(time.RFC3339), out[1])
}

func TestAutoexecNotFoundWhenNoCapabilityAndNoRealFile(t *testing.T) {
	e := New(nil)
	res := e.Autoexec(context.Background(), time.Now())
	assert.False(t, res.Found)
}

func TestAutoexecEmitsErrorOnScriptFailure(t *testing.T) {
	bus := &fakeBus{}
	fs := &fakeFS{files: map[string]string{
		"/system/autoexec.retro": `call nope`,
	}}
	e := New(&host.Context{EventBus: bus, FileSystemManager: fs})

	res := e.Autoexec(context.Background(), time.Now())
	require.True(t, res.Found)
	assert.False(t, res.Result.Success)
	assert.Contains(t, bus.names(), "autoexec:error")
}
