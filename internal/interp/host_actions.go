package interp

import (
	"context"
	"fmt"
	"time"

	"github.com/retroscript/rs/internal/ast"
	"github.com/retroscript/rs/internal/environment"
	"github.com/retroscript/rs/internal/rserrors"
	"github.com/retroscript/rs/internal/value"
)

// hostCommand dispatches a named CommandBus command, turning a
// command-level error into a runtime error. With no host or no
// CommandBus attached it does nothing and returns nil.
func (i *Interpreter) hostCommand(name string, payload *value.Object, pos ast.Position) error {
	if i.host == nil || i.host.CommandBus == nil {
		return nil
	}
	res, err := i.host.CommandBus.Execute(context.Background(), name, payload)
	if err != nil {
		return rserrors.NewRuntimeError(err.Error(), pos.Line, pos.Column, i.source, nil)
	}
	if !res.Success && res.Err != nil {
		return rserrors.NewRuntimeError(res.Err.Error(), pos.Line, pos.Column, i.source, nil)
	}
	return nil
}

func (i *Interpreter) execLaunch(s *ast.Launch, env *environment.Environment) error {
	appVal, err := i.eval(s.App, env)
	if err != nil {
		return err
	}
	params, err := i.evalKeyValues(s.Params, env)
	if err != nil {
		return err
	}
	appID := value.ToStringValue(appVal)
	if i.host != nil && i.host.AppRegistry != nil {
		return i.host.AppRegistry.Launch(context.Background(), appID, params)
	}
	params.Set("appId", appID)
	return i.hostCommand("app:launch", params, s.Pos())
}

func (i *Interpreter) execClose(s *ast.Close, env *environment.Environment) error {
	payload, err := i.targetPayload(s.Target, env)
	if err != nil {
		return err
	}
	return i.hostCommand("window:close", payload, s.Pos())
}

func (i *Interpreter) execFocus(s *ast.Focus, env *environment.Environment) error {
	payload, err := i.targetPayload(s.Target, env)
	if err != nil {
		return err
	}
	return i.hostCommand("window:focus", payload, s.Pos())
}

func (i *Interpreter) execMinimize(s *ast.Minimize, env *environment.Environment) error {
	payload, err := i.targetPayload(s.Target, env)
	if err != nil {
		return err
	}
	return i.hostCommand("window:minimize", payload, s.Pos())
}

func (i *Interpreter) execMaximize(s *ast.Maximize, env *environment.Environment) error {
	payload, err := i.targetPayload(s.Target, env)
	if err != nil {
		return err
	}
	return i.hostCommand("window:maximize", payload, s.Pos())
}

func (i *Interpreter) targetPayload(target ast.Expression, env *environment.Environment) (*value.Object, error) {
	obj := value.NewObject()
	if target == nil {
		return obj, nil
	}
	v, err := i.eval(target, env)
	if err != nil {
		return nil, err
	}
	obj.Set("target", v)
	return obj, nil
}

// execWait suspends cooperatively for the requested duration (ms),
// still honoring Stop() and the timeout check (spec §5).
func (i *Interpreter) execWait(s *ast.Wait, env *environment.Environment) error {
	durVal, err := i.eval(s.Duration, env)
	if err != nil {
		return err
	}
	ms := value.ToNumber(durVal)
	if ms <= 0 {
		return nil
	}
	deadline := time.Now().Add(time.Duration(ms) * time.Millisecond)
	const tick = 10 * time.Millisecond
	for time.Now().Before(deadline) {
		if err := i.checkCancel(s.Pos()); err != nil {
			return err
		}
		remaining := time.Until(deadline)
		if remaining < tick {
			time.Sleep(remaining)
		} else {
			time.Sleep(tick)
		}
	}
	return nil
}

func (i *Interpreter) execWrite(s *ast.Write, env *environment.Environment) error {
	content, err := i.eval(s.Content, env)
	if err != nil {
		return err
	}
	pathVal, err := i.eval(s.Path, env)
	if err != nil {
		return err
	}
	if i.host == nil || i.host.FileSystemManager == nil {
		return rserrors.NewRuntimeError("write requires a FileSystemManager host capability", s.Pos().Line, s.Pos().Column, i.source, nil)
	}
	err = i.host.FileSystemManager.WriteFile(context.Background(), value.ToStringValue(pathVal), value.ToStringValue(content))
	if err != nil {
		return rserrors.NewRuntimeError(err.Error(), s.Pos().Line, s.Pos().Column, i.source, nil)
	}
	return nil
}

func (i *Interpreter) execRead(s *ast.Read, env *environment.Environment) error {
	pathVal, err := i.eval(s.Path, env)
	if err != nil {
		return err
	}
	if i.host == nil || i.host.FileSystemManager == nil {
		return rserrors.NewRuntimeError("read requires a FileSystemManager host capability", s.Pos().Line, s.Pos().Column, i.source, nil)
	}
	content, err := i.host.FileSystemManager.ReadFile(context.Background(), value.ToStringValue(pathVal))
	if err != nil {
		return rserrors.NewRuntimeError(err.Error(), s.Pos().Line, s.Pos().Column, i.source, nil)
	}
	env.Set(s.VarName, content)
	return nil
}

func (i *Interpreter) execMkdir(s *ast.Mkdir, env *environment.Environment) error {
	pathVal, err := i.eval(s.Path, env)
	if err != nil {
		return err
	}
	if i.host == nil || i.host.FileSystemManager == nil {
		return nil
	}
	if err := i.host.FileSystemManager.Mkdir(context.Background(), value.ToStringValue(pathVal)); err != nil {
		return rserrors.NewRuntimeError(err.Error(), s.Pos().Line, s.Pos().Column, i.source, nil)
	}
	return nil
}

func (i *Interpreter) execDelete(s *ast.Delete, env *environment.Environment) error {
	pathVal, err := i.eval(s.Path, env)
	if err != nil {
		return err
	}
	if i.host == nil || i.host.FileSystemManager == nil {
		return nil
	}
	if err := i.host.FileSystemManager.Delete(context.Background(), value.ToStringValue(pathVal)); err != nil {
		return rserrors.NewRuntimeError(err.Error(), s.Pos().Line, s.Pos().Column, i.source, nil)
	}
	return nil
}

func (i *Interpreter) execAlert(s *ast.Alert, env *environment.Environment) error {
	msg, err := i.eval(s.Message, env)
	if err != nil {
		return err
	}
	i.dialogRequest("alert", value.ToStringValue(msg), nil)
	return nil
}

func (i *Interpreter) execNotify(s *ast.Notify, env *environment.Environment) error {
	msg, err := i.eval(s.Message, env)
	if err != nil {
		return err
	}
	i.dialogRequest("notify", value.ToStringValue(msg), nil)
	return nil
}

// execConfirm implements `confirm msg [into $var]`. With no EventBus,
// it binds true, enabling headless autoexec runs (spec §4.3).
func (i *Interpreter) execConfirm(s *ast.Confirm, env *environment.Environment) error {
	msg, err := i.eval(s.Message, env)
	if err != nil {
		return err
	}
	result := i.dialogRequest("confirm", value.ToStringValue(msg), nil)
	answer := true
	if result != nil {
		answer = value.IsTruthy(result.Get("answer"))
	}
	if s.VarName != "" {
		env.Set(s.VarName, answer)
	}
	return nil
}

// execPrompt implements `prompt msg [default expr] [into $var]`. With
// no EventBus, it binds the default (or "").
func (i *Interpreter) execPrompt(s *ast.Prompt, env *environment.Environment) error {
	msg, err := i.eval(s.Message, env)
	if err != nil {
		return err
	}
	def := ""
	if s.Default != nil {
		defVal, err := i.eval(s.Default, env)
		if err != nil {
			return err
		}
		def = value.ToStringValue(defVal)
	}
	payload := value.NewObject()
	payload.Set("default", def)
	result := i.dialogRequest("prompt", value.ToStringValue(msg), payload)
	answer := def
	if result != nil {
		if v := result.Get("answer"); v != nil {
			answer = value.ToStringValue(v)
		}
	}
	if s.VarName != "" {
		env.Set(s.VarName, answer)
	}
	return nil
}

// dialogRequest uses the EventBus request/response pattern (spec
// §4.3's "dialog statements use the EventBus request/response
// pattern"). A nil result signals no bus was available.
func (i *Interpreter) dialogRequest(kind, message string, extra *value.Object) *value.Object {
	if i.host == nil || i.host.EventBus == nil {
		return nil
	}
	payload := value.NewObject()
	payload.Set("message", message)
	if extra != nil {
		for _, k := range extra.Keys() {
			payload.Set(k, extra.Get(k))
		}
	}
	result, err := i.host.EventBus.Request(context.Background(), "dialog:"+kind, payload, 30*time.Second)
	if err != nil {
		return nil
	}
	return result
}

func (i *Interpreter) execPlay(s *ast.Play, env *environment.Environment) error {
	src, err := i.eval(s.Source, env)
	if err != nil {
		return err
	}
	params, err := i.evalKeyValues(s.Params, env)
	if err != nil {
		return err
	}
	params.Set("source", src)
	return i.hostCommand("media:play", params, s.Pos())
}

func (i *Interpreter) execStop(s *ast.Stop, env *environment.Environment) error {
	payload := value.NewObject()
	if s.Source != nil {
		v, err := i.eval(s.Source, env)
		if err != nil {
			return err
		}
		payload.Set("source", v)
	}
	return i.hostCommand("media:stop", payload, s.Pos())
}

func (i *Interpreter) execVideo(s *ast.Video, env *environment.Environment) error {
	src, err := i.eval(s.Source, env)
	if err != nil {
		return err
	}
	params, err := i.evalKeyValues(s.Params, env)
	if err != nil {
		return err
	}
	params.Set("source", src)
	return i.hostCommand("media:video", params, s.Pos())
}

// execCommand routes an unrecognized leading identifier to the host,
// or silently ignores it with no host (spec §7).
func (i *Interpreter) execCommand(s *ast.Command, env *environment.Environment) error {
	if i.host == nil || i.host.CommandBus == nil {
		return nil
	}
	payload := value.NewObject()
	args := make(value.Array, 0, len(s.Args))
	for _, a := range s.Args {
		v, err := i.eval(a, env)
		if err != nil {
			return err
		}
		args = append(args, v)
	}
	payload.Set("args", args)
	return i.hostCommand(fmt.Sprintf("command:%s", s.Name), payload, s.Pos())
}
