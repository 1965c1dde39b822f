package builtins

import "github.com/fatih/color"

// registerTerminal gives scripts direct control over the REPL/CLI's
// colored output, grounded on the teacher's use of fatih/color in its
// own CLI surface. These are additive to `print`/`log`, useful for
// scripts that want to highlight a line without the interpreter's
// own color choices.
func registerTerminal(r Registry) {
	r["colorText"] = func(_ Context, a []any) (any, error) {
		return colorize(str(a, 0), str(a, 1)), nil
	}
	r["bold"] = func(_ Context, a []any) (any, error) { return color.New(color.Bold).Sprint(str(a, 0)), nil }
	r["printColor"] = func(c Context, a []any) (any, error) {
		c.Emit(colorize(str(a, 0), str(a, 1)))
		return nil, nil
	}
}

func colorize(text, name string) string {
	var attr color.Attribute
	switch name {
	case "red":
		attr = color.FgRed
	case "green":
		attr = color.FgGreen
	case "yellow":
		attr = color.FgYellow
	case "blue":
		attr = color.FgBlue
	case "magenta":
		attr = color.FgMagenta
	case "cyan":
		attr = color.FgCyan
	default:
		attr = color.FgWhite
	}
	return color.New(attr).Sprint(text)
}
