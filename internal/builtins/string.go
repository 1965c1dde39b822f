package builtins

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/retroscript/rs/internal/value"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

func str(args []any, i int) string { return value.ToStringValue(arg(args, i)) }

func registerString(r Registry) {
	r["upper"] = func(_ Context, a []any) (any, error) { return upperCaser.String(str(a, 0)), nil }
	r["lower"] = func(_ Context, a []any) (any, error) { return lowerCaser.String(str(a, 0)), nil }
	r["trim"] = func(_ Context, a []any) (any, error) { return strings.TrimSpace(str(a, 0)), nil }
	r["trimStart"] = func(_ Context, a []any) (any, error) { return strings.TrimLeft(str(a, 0), " \t\r\n"), nil }
	r["trimEnd"] = func(_ Context, a []any) (any, error) { return strings.TrimRight(str(a, 0), " \t\r\n"), nil }
	r["length"] = func(_ Context, a []any) (any, error) { return float64(len([]rune(str(a, 0)))), nil }
	r["charAt"] = func(_ Context, a []any) (any, error) {
		rs := []rune(str(a, 0))
		i := int(num(a, 1))
		if i < 0 || i >= len(rs) {
			return "", nil
		}
		return string(rs[i]), nil
	}
	r["charCode"] = func(_ Context, a []any) (any, error) {
		rs := []rune(str(a, 0))
		i := int(num(a, 1))
		if i < 0 || i >= len(rs) {
			return 0.0, nil
		}
		return float64(rs[i]), nil
	}
	r["fromCharCode"] = func(_ Context, a []any) (any, error) {
		var sb strings.Builder
		for _, v := range a {
			sb.WriteRune(rune(int(value.ToNumber(v))))
		}
		return sb.String(), nil
	}
	r["concat"] = func(c Context, a []any) (any, error) {
		var sb strings.Builder
		for _, v := range a {
			sb.WriteString(value.ToStringValue(v))
		}
		return c.Limits().ClampStringLength(sb.String()), nil
	}
	r["substr"] = func(_ Context, a []any) (any, error) {
		rs := []rune(str(a, 0))
		start := clampIdx(int(num(a, 1)), len(rs))
		length := len(rs) - start
		if len(a) > 2 {
			length = int(num(a, 2))
		}
		end := clampIdx(start+length, len(rs))
		if end < start {
			end = start
		}
		return string(rs[start:end]), nil
	}
	r["substring"] = func(_ Context, a []any) (any, error) {
		rs := []rune(str(a, 0))
		start := clampIdx(int(num(a, 1)), len(rs))
		end := len(rs)
		if len(a) > 2 {
			end = clampIdx(int(num(a, 2)), len(rs))
		}
		if start > end {
			start, end = end, start
		}
		return string(rs[start:end]), nil
	}
	r["slice"] = func(_ Context, a []any) (any, error) {
		rs := []rune(str(a, 0))
		start := sliceIdx(int(num(a, 1)), len(rs))
		end := len(rs)
		if len(a) > 2 {
			end = sliceIdx(int(num(a, 2)), len(rs))
		}
		if end < start {
			end = start
		}
		return string(rs[start:end]), nil
	}
	r["indexOf"] = func(_ Context, a []any) (any, error) {
		return float64(runeIndex(str(a, 0), str(a, 1))), nil
	}
	r["lastIndexOf"] = func(_ Context, a []any) (any, error) {
		s, sub := str(a, 0), str(a, 1)
		byteIdx := strings.LastIndex(s, sub)
		if byteIdx < 0 {
			return -1.0, nil
		}
		return float64(len([]rune(s[:byteIdx]))), nil
	}
	r["contains"] = func(_ Context, a []any) (any, error) { return strings.Contains(str(a, 0), str(a, 1)), nil }
	r["startsWith"] = func(_ Context, a []any) (any, error) { return strings.HasPrefix(str(a, 0), str(a, 1)), nil }
	r["endsWith"] = func(_ Context, a []any) (any, error) { return strings.HasSuffix(str(a, 0), str(a, 1)), nil }
	r["replace"] = func(_ Context, a []any) (any, error) { return strings.Replace(str(a, 0), str(a, 1), str(a, 2), 1), nil }
	r["replaceAll"] = func(_ Context, a []any) (any, error) {
		return strings.ReplaceAll(str(a, 0), str(a, 1), str(a, 2)), nil
	}
	r["split"] = func(c Context, a []any) (any, error) {
		sep := str(a, 1)
		var parts []string
		if sep == "" {
			parts = strings.Split(str(a, 0), "")
		} else {
			parts = strings.Split(str(a, 0), sep)
		}
		n := c.Limits().ClampArrayLength(len(parts))
		out := make(value.Array, n)
		for i := 0; i < n; i++ {
			out[i] = parts[i]
		}
		return out, nil
	}
	r["join"] = func(_ Context, a []any) (any, error) {
		arr, _ := arg(a, 0).(value.Array)
		sep := str(a, 1)
		parts := make([]string, len(arr))
		for i, e := range arr {
			parts[i] = value.ToStringValue(e)
		}
		return strings.Join(parts, sep), nil
	}
	r["padStart"] = func(c Context, a []any) (any, error) {
		return c.Limits().ClampStringLength(pad(str(a, 0), int(num(a, 1)), padStr(a), true)), nil
	}
	r["padEnd"] = func(c Context, a []any) (any, error) {
		return c.Limits().ClampStringLength(pad(str(a, 0), int(num(a, 1)), padStr(a), false)), nil
	}
	r["repeat"] = func(c Context, a []any) (any, error) {
		n := int(num(a, 1))
		if n < 0 {
			n = 0
		}
		if n > 10_000 {
			n = 10_000
		}
		return c.Limits().ClampStringLength(strings.Repeat(str(a, 0), n)), nil
	}
	r["reverse"] = func(_ Context, a []any) (any, error) {
		rs := []rune(str(a, 0))
		for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
			rs[i], rs[j] = rs[j], rs[i]
		}
		return string(rs), nil
	}
}

func padStr(a []any) string {
	if len(a) > 2 {
		return str(a, 2)
	}
	return " "
}

func pad(s string, targetLen int, padWith string, start bool) string {
	rs := []rune(s)
	if len(rs) >= targetLen || padWith == "" {
		return s
	}
	need := targetLen - len(rs)
	padRunes := []rune(strings.Repeat(padWith, (need/len([]rune(padWith)))+1))[:need]
	if start {
		return string(padRunes) + s
	}
	return s + string(padRunes)
}

func clampIdx(i, n int) int {
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	return i
}

// sliceIdx resolves a possibly-negative index the way `slice` allows
// (negative counts from the end), clamped into [0, n].
func sliceIdx(i, n int) int {
	if i < 0 {
		i += n
	}
	return clampIdx(i, n)
}

func runeIndex(s, sub string) int {
	byteIdx := strings.Index(s, sub)
	if byteIdx < 0 {
		return -1
	}
	return len([]rune(s[:byteIdx]))
}
