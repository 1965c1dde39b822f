package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroscript/rs/internal/ast"
)

func parseOK(t *testing.T, src string) []ast.Statement {
	t.Helper()
	stmts, errs := Parse(src)
	require.Empty(t, errs, "unexpected parse errors: %v", errs)
	return stmts
}

func TestParse_SetAndBareAssign(t *testing.T) {
	stmts := parseOK(t, "set $x = 1\n$y = 2\n")
	require.Len(t, stmts, 2)
	s0, ok := stmts[0].(*ast.Set)
	require.True(t, ok)
	assert.Equal(t, "x", s0.Name)
	s1, ok := stmts[1].(*ast.Set)
	require.True(t, ok)
	assert.Equal(t, "y", s1.Name)
}

func TestParse_ArithmeticPrecedence(t *testing.T) {
	stmts := parseOK(t, "set $x = 2 + 3 * 4")
	s := stmts[0].(*ast.Set)
	bin := s.Value.(*ast.Binary)
	assert.Equal(t, "+", bin.Op)
	right := bin.Right.(*ast.Binary)
	assert.Equal(t, "*", right.Op)
}

func TestParse_PrintExpressionMode(t *testing.T) {
	stmts := parseOK(t, `print "Hello" + $who`)
	pr := stmts[0].(*ast.Print)
	_, isBinary := pr.Target.(*ast.Binary)
	assert.True(t, isBinary)
}

func TestParse_PrintUnquotedMode(t *testing.T) {
	stmts := parseOK(t, `print Hello, $name!`)
	pr := stmts[0].(*ast.Print)
	interp, ok := pr.Target.(*ast.InterpolatedString)
	require.True(t, ok)
	// "Hello" "," "$name" "!" -> suppressed space before ',' and '!'
	var rendered string
	for _, part := range interp.Parts {
		if part.Expr != nil {
			rendered += "$" + part.Expr.(*ast.Variable).Name
		} else {
			rendered += part.Text
		}
	}
	assert.Equal(t, "Hello, $name!", rendered)
}

func TestParse_IfElse(t *testing.T) {
	stmts := parseOK(t, "if $x < 2 then { return $x } else { return 0 }")
	ifs := stmts[0].(*ast.If)
	require.Len(t, ifs.Then.Statements, 1)
	require.Len(t, ifs.Else.Statements, 1)
}

func TestParse_IfNoElseIsEmptyNotNil(t *testing.T) {
	stmts := parseOK(t, "if $x { return 1 }")
	ifs := stmts[0].(*ast.If)
	require.NotNil(t, ifs.Else)
	assert.Empty(t, ifs.Else.Statements)
}

func TestParse_LoopWhileForEach(t *testing.T) {
	stmts := parseOK(t, "loop 3 { print $i }\nwhile $x { print $x }\nforeach $v in $arr { print $v }\n")
	require.Len(t, stmts, 3)
	_, ok := stmts[0].(*ast.Loop)
	assert.True(t, ok)
	_, ok = stmts[1].(*ast.While)
	assert.True(t, ok)
	fe, ok := stmts[2].(*ast.ForEach)
	assert.True(t, ok)
	assert.Equal(t, "v", fe.Var)
}

func TestParse_FunctionDefAndCall(t *testing.T) {
	stmts := parseOK(t, "def fib($n) { return $n }\nprint call fib 10")
	fn := stmts[0].(*ast.FunctionDef)
	assert.Equal(t, "fib", fn.Name)
	assert.Equal(t, []string{"n"}, fn.Params)
	pr := stmts[1].(*ast.Print)
	call := pr.Target.(*ast.Call)
	assert.Equal(t, "fib", call.Name)
	require.Len(t, call.Args, 1)
}

func TestParse_TryCatchDefaultErrorName(t *testing.T) {
	stmts := parseOK(t, "try { set $x = call nope } catch { print \"caught\" }")
	tc := stmts[0].(*ast.TryCatch)
	assert.Equal(t, "error", tc.ErrName)
}

func TestParse_TryCatchNamedError(t *testing.T) {
	stmts := parseOK(t, "try { set $x = 1 } catch $e { print $e }")
	tc := stmts[0].(*ast.TryCatch)
	assert.Equal(t, "e", tc.ErrName)
}

func TestParse_OnEventDottedName(t *testing.T) {
	stmts := parseOK(t, "on window:open { print \"opened\" }")
	on := stmts[0].(*ast.On)
	assert.Equal(t, "window:open", on.EventName)
}

func TestParse_EmitWithPayload(t *testing.T) {
	stmts := parseOK(t, `emit app:ready status="ok"`)
	em := stmts[0].(*ast.Emit)
	assert.Equal(t, "app:ready", em.EventName)
	require.Len(t, em.Payload, 1)
	assert.Equal(t, "status", em.Payload[0].Key)
}

func TestParse_ArrayAndObjectLiterals(t *testing.T) {
	stmts := parseOK(t, "set $a = [1, 2, 3]\nset $o = {x: 1, y: 2}\n")
	arr := stmts[0].(*ast.Set).Value.(*ast.Array)
	assert.Len(t, arr.Elements, 3)
	obj := stmts[1].(*ast.Set).Value.(*ast.Object)
	assert.Equal(t, []string{"x", "y"}, obj.Keys)
}

func TestParse_MemberAndIndex(t *testing.T) {
	stmts := parseOK(t, "set $x = $a.b.c\nset $y = $arr[0]\n")
	_, ok := stmts[0].(*ast.Set).Value.(*ast.Variable)
	require.True(t, ok, "dotted variable is a single VARIABLE token, not Member")
	idx := stmts[1].(*ast.Set).Value.(*ast.Index)
	_, ok = idx.Collection.(*ast.Variable)
	assert.True(t, ok)
}

func TestParse_WriteReadMkdirDelete(t *testing.T) {
	stmts := parseOK(t, `write "hi" to "/tmp/a.txt"` + "\n" +
		`read "/tmp/a.txt" into $content` + "\n" +
		`mkdir "/tmp/dir"` + "\n" +
		`delete "/tmp/dir"` + "\n")
	require.Len(t, stmts, 4)
	w := stmts[0].(*ast.Write)
	_, ok := w.Content.(*ast.Literal)
	assert.True(t, ok)
	r := stmts[1].(*ast.Read)
	assert.Equal(t, "content", r.VarName)
}

func TestParse_UnknownIdentifierBecomesCommand(t *testing.T) {
	stmts := parseOK(t, "mystery 1 2")
	cmd, ok := stmts[0].(*ast.Command)
	require.True(t, ok)
	assert.Equal(t, "mystery", cmd.Name)
	assert.Len(t, cmd.Args, 2)
}

func TestParse_RoundTrip(t *testing.T) {
	src := "set $x = 2 + 3 * 4\nprint $x\n"
	stmts := parseOK(t, src)
	rendered := ast.Print(stmts)
	stmts2, errs := Parse(rendered)
	require.Empty(t, errs)
	require.Len(t, stmts2, len(stmts))
}

func TestParse_ErrorsAccumulate(t *testing.T) {
	_, errs := Parse("set $x = \nset $y = 1")
	assert.NotEmpty(t, errs)
}
