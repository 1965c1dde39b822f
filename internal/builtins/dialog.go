package builtins

import "fmt"

// registerDialog provides alert/confirm/prompt/notify as builtins.
// They do not consult any host capability, whether or not a host is
// attached: each emits a tagged console line ("[alert] ...") through
// the context, confirm returns false, and prompt returns its second
// argument, or "" when there is none.
func registerDialog(r Registry) {
	r["alert"] = func(c Context, a []any) (any, error) {
		c.Emit(fmt.Sprintf("[alert] %s", str(a, 0)))
		return nil, nil
	}
	r["notify"] = func(c Context, a []any) (any, error) {
		c.Emit(fmt.Sprintf("[notify] %s", str(a, 0)))
		return nil, nil
	}
	r["confirm"] = func(c Context, a []any) (any, error) {
		c.Emit(fmt.Sprintf("[confirm] %s", str(a, 0)))
		return false, nil
	}
	r["prompt"] = func(c Context, a []any) (any, error) {
		c.Emit(fmt.Sprintf("[prompt] %s", str(a, 0)))
		if len(a) > 1 {
			return arg(a, 1), nil
		}
		return "", nil
	}
}
