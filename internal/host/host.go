// Package host defines the capability interfaces the RS core consumes
// from its embedder (spec §6), and the Context bundle that replaces
// the teacher-style "runtime reflection via a shared host singleton"
// with a typed record of optional handles (SPEC_FULL.md, DESIGN NOTES
// §9).
package host

import (
	"context"
	"time"

	"github.com/retroscript/rs/internal/value"
)

// EventBus is the host's publish/subscribe transport. The core never
// implements wildcard matching itself; it supplies concrete event
// names and handler closures and trusts the bus to route "*" and
// "name:*" patterns (spec §6).
type EventBus interface {
	Emit(name string, payload *value.Object)
	On(pattern string, handler func(payload *value.Object)) (unsubscribe func())
	Off(name string, handler func(payload *value.Object))
	Request(ctx context.Context, name string, payload *value.Object, timeout time.Duration) (*value.Object, error)
}

// CommandResult is the {success, data|error} shape CommandBus.Execute
// resolves to.
type CommandResult struct {
	Success bool
	Data    any
	Err     error
}

// CommandBus executes named host commands. The interpreter calls
// "app:launch" and "window:{close,focus,minimize,maximize}" (spec §6).
type CommandBus interface {
	Execute(ctx context.Context, name string, payload *value.Object) (CommandResult, error)
}

// FileSystemManager is the host's virtual filesystem. Path is accepted
// as a string exactly as RS scripts write it; segment-array paths are
// the embedder's concern, not the core's (spec §6).
type FileSystemManager interface {
	ReadFile(ctx context.Context, path string) (string, error)
	WriteFile(ctx context.Context, path, content string) error
	Mkdir(ctx context.Context, path string) error
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	ListDirectory(ctx context.Context, path string) ([]string, error)
}

// App is the minimal app-registry record the `getApps` builtin exposes.
type App struct {
	ID   string
	Name string
	Meta *value.Object
}

// AppRegistry is the host's installed-application catalog (spec §6).
type AppRegistry interface {
	Get(id string) (App, bool)
	Launch(ctx context.Context, id string, params *value.Object) error
	GetAll() []App
}

// WindowManager, StateManager, and StorageManager are optional
// embedder capabilities the initialization Context can carry. Of
// these, the core calls only StateManager (the getState/setState
// builtins); WindowManager and StorageManager are carried but not
// called.
type WindowManager interface {
	FocusWindow(ctx context.Context, id string) error
}

type StateManager interface {
	GetState(key string) (any, bool)
	SetState(key string, value any)
}

type StorageManager interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
}

// Context bundles every capability an embedder may supply at
// initialize() time. Every field is nilable; the interpreter checks
// for nil and takes the degrade-or-fail path spec §4.3 describes for
// each statement kind rather than panicking on a missing capability.
type Context struct {
	EventBus          EventBus
	CommandBus        CommandBus
	FileSystemManager FileSystemManager
	WindowManager     WindowManager
	AppRegistry       AppRegistry
	StateManager      StateManager
	StorageManager    StorageManager
}
