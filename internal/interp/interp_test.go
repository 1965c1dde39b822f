package interp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroscript/rs/internal/parser"
)

func run(t *testing.T, source string) ([]string, *Interpreter) {
	t.Helper()
	stmts, errs := parser.Parse(source)
	require.Empty(t, errs, "parse errors: %v", errs)

	var out []string
	interp := New(nil)
	interp.OnOutput = func(line string) { out = append(out, line) }
	_, scriptErr := interp.Run(stmts, source, 5*time.Second)
	require.Nil(t, scriptErr, "run error: %v", scriptErr)
	return out, interp
}

func TestArithmeticAndPrint(t *testing.T) {
	out, _ := run(t, `set $x = 2 + 3 * 4
print $x`)
	assert.Equal(t, []string{"14"}, out)
}

func TestStringConcatenation(t *testing.T) {
	out, _ := run(t, `set $s = "ab"
print $s + "c"`)
	assert.Equal(t, []string{"abc"}, out)
}

func TestLoopExposesIndex(t *testing.T) {
	out, _ := run(t, `loop 3 { print $i }`)
	assert.Equal(t, []string{"0", "1", "2"}, out)
}

func TestRecursiveFibonacci(t *testing.T) {
	out, _ := run(t, `def fib($n) {
  if $n < 2 then { return $n }
  set $a = $n - 1
  set $b = $n - 2
  set $ra = call fib $a
  set $rb = call fib $b
  return $ra + $rb
}
print call fib 10`)
	assert.Equal(t, []string{"55"}, out)
}

func TestTryCatchCapturesRuntimeError(t *testing.T) {
	out, _ := run(t, `try { set $x = call nope } catch $e { print "caught" }`)
	assert.Equal(t, []string{"caught"}, out)
}

func TestSortBuiltinViaCall(t *testing.T) {
	out, _ := run(t, `set $arr = [3,1,2]
print call sort $arr`)
	assert.Equal(t, []string{"[1,2,3]"}, out)
}

func TestScopePersistsAfterBlock(t *testing.T) {
	out, _ := run(t, `set $x = 1
if true then { set $x = 2 }
print $x`)
	assert.Equal(t, []string{"2"}, out)
}

func TestBlockScopedSetDoesNotLeakOut(t *testing.T) {
	out, _ := run(t, `if true then { set $y = 5 }
print $y`)
	assert.Equal(t, []string{"null"}, out)
}

func TestBreakAndContinue(t *testing.T) {
	out, _ := run(t, `loop 5 {
  if $i == 1 then { continue }
  if $i == 3 then { break }
  print $i
}`)
	assert.Equal(t, []string{"0", "2"}, out)
}

func TestShortCircuitOr(t *testing.T) {
	out, _ := run(t, `def sideEffect() { print "called"; return true }
set $r = true || call sideEffect
print $r`)
	assert.Equal(t, []string{"true"}, out)
}

func TestDivisionByZeroYieldsZero(t *testing.T) {
	out, _ := run(t, `print 5 / 0
print 5 % 0`)
	assert.Equal(t, []string{"0", "0"}, out)
}

func TestForeachRejectsNonArray(t *testing.T) {
	_, errs := parser.Parse(`foreach $x in 5 { print $x }`)
	require.Empty(t, errs)
	stmts, _ := parser.Parse(`foreach $x in 5 { print $x }`)
	interp := New(nil)
	_, scriptErr := interp.Run(stmts, "", 0)
	require.NotNil(t, scriptErr)
	assert.Contains(t, scriptErr.Message, "foreach requires an array")
}

func TestRecursionLimitRaisesRecursionError(t *testing.T) {
	stmts, errs := parser.Parse(`def loopForever($n) { return call loopForever $n }
call loopForever 1`)
	require.Empty(t, errs)
	interp := New(nil)
	_, scriptErr := interp.Run(stmts, "", 0)
	require.NotNil(t, scriptErr)
	assert.Equal(t, "RecursionError", string(scriptErr.Name))
}
