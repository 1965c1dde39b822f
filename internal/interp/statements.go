package interp

import (
	"fmt"

	"github.com/retroscript/rs/internal/ast"
	"github.com/retroscript/rs/internal/environment"
	"github.com/retroscript/rs/internal/rserrors"
	"github.com/retroscript/rs/internal/value"
)

// execBlock runs a statement list against env, checking cancellation
// before each statement (spec §4.3/§5) and threading the first
// non-none control-flow signal back to the caller.
func (i *Interpreter) execBlock(stmts []ast.Statement, env *environment.Environment) (signal, error) {
	for _, stmt := range stmts {
		if err := i.checkCancel(stmt.Pos()); err != nil {
			return noSignal, err
		}
		sig, err := i.execStmt(stmt, env)
		if err != nil {
			return noSignal, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (i *Interpreter) execStmt(stmt ast.Statement, env *environment.Environment) (signal, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		return i.execBlock(s.Statements, env.NewChild())
	case *ast.Set:
		v, err := i.eval(s.Value, env)
		if err != nil {
			return noSignal, err
		}
		env.Set(s.Name, v)
		return noSignal, nil
	case *ast.Print:
		v, err := i.eval(s.Target, env)
		if err != nil {
			return noSignal, err
		}
		i.Emit(value.ToStringValue(v))
		return noSignal, nil
	case *ast.If:
		return i.execIf(s, env)
	case *ast.Loop:
		return i.execLoop(s, env)
	case *ast.While:
		return i.execWhile(s, env)
	case *ast.ForEach:
		return i.execForEach(s, env)
	case *ast.Break:
		return signal{kind: signalBreak}, nil
	case *ast.Continue:
		return signal{kind: signalContinue}, nil
	case *ast.Return:
		if s.Value == nil {
			return signal{kind: signalReturn, value: nil}, nil
		}
		v, err := i.eval(s.Value, env)
		if err != nil {
			return noSignal, err
		}
		return signal{kind: signalReturn, value: v}, nil
	case *ast.FunctionDef:
		i.functions[s.Name] = &function{Params: s.Params, Body: s.Body, Closure: env}
		return noSignal, nil
	case *ast.Call:
		_, err := i.evalCall(s.Name, s.Args, env, s.Pos())
		return noSignal, err
	case *ast.TryCatch:
		return i.execTryCatch(s, env)
	case *ast.On:
		return noSignal, i.execOn(s, env)
	case *ast.Emit:
		return noSignal, i.execEmit(s, env)
	case *ast.Launch:
		return noSignal, i.execLaunch(s, env)
	case *ast.Close:
		return noSignal, i.execClose(s, env)
	case *ast.Wait:
		return noSignal, i.execWait(s, env)
	case *ast.Focus:
		return noSignal, i.execFocus(s, env)
	case *ast.Minimize:
		return noSignal, i.execMinimize(s, env)
	case *ast.Maximize:
		return noSignal, i.execMaximize(s, env)
	case *ast.Write:
		return noSignal, i.execWrite(s, env)
	case *ast.Read:
		return noSignal, i.execRead(s, env)
	case *ast.Mkdir:
		return noSignal, i.execMkdir(s, env)
	case *ast.Delete:
		return noSignal, i.execDelete(s, env)
	case *ast.Alert:
		return noSignal, i.execAlert(s, env)
	case *ast.Confirm:
		return noSignal, i.execConfirm(s, env)
	case *ast.Prompt:
		return noSignal, i.execPrompt(s, env)
	case *ast.Notify:
		return noSignal, i.execNotify(s, env)
	case *ast.Play:
		return noSignal, i.execPlay(s, env)
	case *ast.Stop:
		return noSignal, i.execStop(s, env)
	case *ast.Video:
		return noSignal, i.execVideo(s, env)
	case *ast.Command:
		return noSignal, i.execCommand(s, env)
	default:
		return noSignal, fmt.Errorf("interp: unhandled statement type %T", stmt)
	}
}

func (i *Interpreter) execIf(s *ast.If, env *environment.Environment) (signal, error) {
	cond, err := i.eval(s.Condition, env)
	if err != nil {
		return noSignal, err
	}
	if value.IsTruthy(cond) {
		return i.execBlock(s.Then.Statements, env.NewChild())
	}
	if s.Else != nil {
		return i.execBlock(s.Else.Statements, env.NewChild())
	}
	return noSignal, nil
}

func (i *Interpreter) execLoop(s *ast.Loop, env *environment.Environment) (signal, error) {
	countVal, err := i.eval(s.Count, env)
	if err != nil {
		return noSignal, err
	}
	n := i.limits.ClampLoopIterations(int(value.ToNumber(countVal)))
	body := env.NewChild()
	for idx := 0; idx < n; idx++ {
		if err := i.checkCancel(s.Pos()); err != nil {
			return noSignal, err
		}
		body.Define("i", float64(idx))
		sig, err := i.execBlock(s.Body.Statements, body)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case signalBreak:
			return noSignal, nil
		case signalReturn:
			return sig, nil
		}
	}
	return noSignal, nil
}

func (i *Interpreter) execWhile(s *ast.While, env *environment.Environment) (signal, error) {
	body := env.NewChild()
	iterations := 0
	for {
		if err := i.checkCancel(s.Pos()); err != nil {
			return noSignal, err
		}
		cond, err := i.eval(s.Condition, env)
		if err != nil {
			return noSignal, err
		}
		if !value.IsTruthy(cond) {
			return noSignal, nil
		}
		iterations++
		if iterations > i.limits.MaxLoopIterations {
			return noSignal, rserrors.NewRuntimeError(
				"while loop exceeded maximum iteration count", s.Pos().Line, s.Pos().Column, i.source, nil)
		}
		sig, err := i.execBlock(s.Body.Statements, body)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case signalBreak:
			return noSignal, nil
		case signalReturn:
			return sig, nil
		}
	}
}

func (i *Interpreter) execForEach(s *ast.ForEach, env *environment.Environment) (signal, error) {
	iterVal, err := i.eval(s.Iter, env)
	if err != nil {
		return noSignal, err
	}
	arr, ok := iterVal.(value.Array)
	if !ok {
		return noSignal, rserrors.NewRuntimeError(
			fmt.Sprintf("foreach requires an array, got %s", value.TypeOf(iterVal)),
			s.Pos().Line, s.Pos().Column, i.source, nil)
	}
	snapshot := append(value.Array(nil), arr...)
	body := env.NewChild()
	for idx, elem := range snapshot {
		if err := i.checkCancel(s.Pos()); err != nil {
			return noSignal, err
		}
		body.Define(s.Var, elem)
		body.Define("i", float64(idx))
		sig, err := i.execBlock(s.Body.Statements, body)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case signalBreak:
			return noSignal, nil
		case signalReturn:
			return sig, nil
		}
	}
	return noSignal, nil
}

func (i *Interpreter) execTryCatch(s *ast.TryCatch, env *environment.Environment) (signal, error) {
	sig, err := i.execBlock(s.Body.Statements, env.NewChild())
	if err == nil {
		return sig, nil
	}
	if isStopRequested(err) {
		return noSignal, err
	}
	errName := s.ErrName
	if errName == "" {
		errName = "error"
	}
	catchEnv := env.NewChild()
	catchEnv.Define(errName, err.Error())
	return i.execBlock(s.Handler.Statements, catchEnv)
}
