package engine

import (
	"context"
	"os"
	"time"

	"github.com/retroscript/rs/internal/safety"
	"github.com/retroscript/rs/internal/value"
)

// virtualAutoexecPaths are the three virtual-filesystem locations
// probed after the real host path, in order. Spec §4.7 leaves the
// exact paths to the embedder; these mirror a conventional retro
// desktop's boot search order (system config, then user home, then a
// shared scripts drop folder). See DESIGN.md's Open Question
// decisions.
var virtualAutoexecPaths = []string{
	"/system/autoexec.retro",
	"/home/autoexec.retro",
	"/scripts/autoexec.retro",
}

// realAutoexecPath is the host-filesystem path probed first, read
// directly via os.ReadFile rather than through FileSystemManager,
// since it is the actual boot disk rather than the virtual one the
// scripting sandbox otherwise sees.
const realAutoexecPath = "./autoexec.retro"

// AutoexecResult reports which path (if any) was found and run.
type AutoexecResult struct {
	Found  bool
	Path   string
	Result Result
}

// Autoexec implements spec §4.7: on host boot, probe the real
// autoexec.retro first, then the virtual-filesystem candidates in
// order; run the first one found with AUTOEXEC_TIMEOUT and
// AUTOEXEC=true/BOOT_TIME pre-bound, emitting autoexec:{start,
// complete,error} when a bus is present.
func (e *ScriptEngine) Autoexec(ctx context.Context, bootTime time.Time) AutoexecResult {
	source, path, ok := e.findAutoexec(ctx)
	if !ok {
		return AutoexecResult{Found: false}
	}

	e.emitAutoexec("autoexec:start", path, nil)

	opts := RunOptions{
		Timeout: safety.AutoexecTimeout,
		Variables: map[string]any{
			"AUTOEXEC":  true,
			"BOOT_TIME": bootTime.Format(time.RFC3339),
		},
	}
	result := e.Run(source, opts)

	if result.Success {
		e.emitAutoexec("autoexec:complete", path, nil)
	} else {
		e.emitAutoexec("autoexec:error", path, result.Error)
	}
	return AutoexecResult{Found: true, Path: path, Result: result}
}

func (e *ScriptEngine) findAutoexec(ctx context.Context) (source, path string, ok bool) {
	if content, err := os.ReadFile(realAutoexecPath); err == nil {
		return string(content), realAutoexecPath, true
	}

	if e.host == nil || e.host.FileSystemManager == nil {
		return "", "", false
	}
	fs := e.host.FileSystemManager
	for _, p := range virtualAutoexecPaths {
		exists, err := fs.Exists(ctx, p)
		if err != nil || !exists {
			continue
		}
		content, err := fs.ReadFile(ctx, p)
		if err != nil {
			continue
		}
		return content, p, true
	}
	return "", "", false
}

func (e *ScriptEngine) emitAutoexec(name, path string, scriptErr interface{ Error() string }) {
	if e.host == nil || e.host.EventBus == nil {
		return
	}
	payload := value.NewObject()
	payload.Set("path", path)
	if scriptErr != nil {
		payload.Set("error", scriptErr.Error())
	}
	e.host.EventBus.Emit(name, payload)
}
