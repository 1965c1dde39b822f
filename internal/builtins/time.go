package builtins

import (
	"strings"
	"time"
)

// registerTime wires spec §4.8's time library onto the Go standard
// library's time package; RS has no timezone concept, so every clock
// read uses time.Now() in local time (matching the host process).
func registerTime(r Registry) {
	r["now"] = func(_ Context, _ []any) (any, error) { return float64(time.Now().UnixMilli()), nil }
	r["timestamp"] = func(_ Context, _ []any) (any, error) { return float64(time.Now().Unix()), nil }
	r["time"] = func(_ Context, _ []any) (any, error) { return time.Now().Format("15:04:05"), nil }
	r["date"] = func(_ Context, _ []any) (any, error) { return time.Now().Format("2006-01-02"), nil }
	r["datetime"] = func(_ Context, _ []any) (any, error) { return time.Now().Format("2006-01-02 15:04:05"), nil }
	r["year"] = func(_ Context, _ []any) (any, error) { return float64(time.Now().Year()), nil }
	r["month"] = func(_ Context, _ []any) (any, error) { return float64(time.Now().Month()), nil }
	r["day"] = func(_ Context, _ []any) (any, error) { return float64(time.Now().Day()), nil }
	r["weekday"] = func(_ Context, _ []any) (any, error) { return time.Now().Weekday().String(), nil }
	r["hour"] = func(_ Context, _ []any) (any, error) { return float64(time.Now().Hour()), nil }
	r["minute"] = func(_ Context, _ []any) (any, error) { return float64(time.Now().Minute()), nil }
	r["second"] = func(_ Context, _ []any) (any, error) { return float64(time.Now().Second()), nil }
	r["millisecond"] = func(_ Context, _ []any) (any, error) { return float64(time.Now().Nanosecond() / 1e6), nil }
	r["elapsed"] = func(c Context, _ []any) (any, error) {
		return float64(time.Since(c.RunStart()).Milliseconds()), nil
	}
	r["addDays"] = func(_ Context, a []any) (any, error) { return shiftDate(a, 0, 0, int(num(a, 1))) }
	r["addHours"] = func(_ Context, a []any) (any, error) { return shiftDuration(a, time.Duration(num(a, 1))*time.Hour) }
	r["addMinutes"] = func(_ Context, a []any) (any, error) {
		return shiftDuration(a, time.Duration(num(a, 1))*time.Minute)
	}
	r["addSeconds"] = func(_ Context, a []any) (any, error) {
		return shiftDuration(a, time.Duration(num(a, 1))*time.Second)
	}
	r["formatDate"] = func(_ Context, a []any) (any, error) {
		t, err := parseRSDate(str(a, 0))
		if err != nil {
			return "", nil
		}
		return t.Format(goLayout(str(a, 1))), nil
	}
	r["formatTime"] = func(_ Context, a []any) (any, error) {
		t, err := parseRSDate(str(a, 0))
		if err != nil {
			return "", nil
		}
		return t.Format(goLayout(str(a, 1))), nil
	}
	r["parseDate"] = func(_ Context, a []any) (any, error) {
		t, err := parseRSDate(str(a, 0))
		if err != nil {
			return nil, nil
		}
		return float64(t.UnixMilli()), nil
	}
	r["toISO"] = func(_ Context, a []any) (any, error) {
		t, err := parseRSDate(str(a, 0))
		if err != nil {
			return "", nil
		}
		return t.Format(time.RFC3339), nil
	}
}

func shiftDuration(a []any, d time.Duration) (any, error) {
	t, err := parseRSDate(str(a, 0))
	if err != nil {
		return str(a, 0), nil
	}
	return t.Add(d).Format(time.RFC3339), nil
}

func shiftDate(a []any, hours, mins, days int) (any, error) {
	t, err := parseRSDate(str(a, 0))
	if err != nil {
		return str(a, 0), nil
	}
	return t.AddDate(0, 0, days).Format(time.RFC3339), nil
}

func parseRSDate(s string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "15:04:05"}
	var lastErr error
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// goLayout maps the small set of strftime-ish tokens the spec's
// formatDate/formatTime examples use onto Go's reference-time layout.
func goLayout(pattern string) string {
	replacer := map[string]string{
		"YYYY": "2006", "MM": "01", "DD": "02",
		"HH": "15", "mm": "04", "ss": "05",
	}
	out := pattern
	for token, layout := range replacer {
		out = strings.ReplaceAll(out, token, layout)
	}
	return out
}
