package ast_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/retroscript/rs/internal/ast"
	"github.com/retroscript/rs/internal/parser"
)

// Snapshot coverage of ast.Print's source reconstruction, grounded on
// the teacher's fixture_test.go use of go-snaps for whole-artifact
// comparison (here, AST-to-source instead of program output).
func TestPrintSnapshots(t *testing.T) {
	sources := map[string]string{
		"set_and_print":  `set $x = 2 + 3 * 4
print $x`,
		"if_else":        `if $x > 10 then { print "big" } else { print "small" }`,
		"function_def":   `def add($a, $b) { return $a + $b }`,
		"foreach":        `for $item in [1, 2, 3] { print $item }`,
		"try_catch":      `try { call risky } catch $e { print $e }`,
		"object_literal": `set $obj = {"a": 1, "b": 2}`,
	}

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	for _, name := range names {
		source := sources[name]
		t.Run(name, func(t *testing.T) {
			stmts, errs := parser.Parse(source)
			require.Empty(t, errs)
			snaps.MatchSnapshot(t, ast.Print(stmts))
		})
	}
}
