// Package safety implements the execution-limits subsystem of spec
// §4.4: timeouts, recursion/loop/length caps, and the clamps builtins
// must apply when constructing strings or arrays.
package safety

import (
	"fmt"
	"log"
	"time"
)

// Default limit values (spec §4.4).
const (
	MaxRecursionDepth       = 1000
	MaxLoopIterations       = 100_000
	MaxStringLength         = 1_000_000
	MaxArrayLength          = 100_000
	MaxObjectKeys           = 10_000
	MaxEventHandlers        = 1_000
	DefaultExecutionTimeout = 30_000 * time.Millisecond
	AutoexecTimeout         = 10_000 * time.Millisecond
	MaxCallStackSize        = 100
)

// TimeoutError is raised by CheckTimeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("script execution exceeded %s", e.Timeout)
}

// RecursionError is raised by CheckRecursionDepth.
type RecursionError struct {
	MaxDepth     int
	FunctionName string
}

func (e *RecursionError) Error() string {
	return fmt.Sprintf("maximum call stack size (%d) exceeded in '%s'", e.MaxDepth, e.FunctionName)
}

// EventHandlerLimitError is raised by CheckEventHandlerCount.
type EventHandlerLimitError struct {
	Max int
}

func (e *EventHandlerLimitError) Error() string {
	return fmt.Sprintf("maximum event handler count (%d) exceeded", e.Max)
}

// Limits is a mutable copy of the safety configuration an engine run
// carries; defaults match spec §4.4 but DEFAULT_EXECUTION_TIMEOUT can
// be overridden per run via ScriptEngine's RunOptions.timeout.
type Limits struct {
	MaxRecursionDepth int
	MaxLoopIterations int
	MaxStringLength   int
	MaxArrayLength    int
	MaxObjectKeys     int
	MaxEventHandlers  int
	CurrentTimeout    time.Duration
	AutoexecTimeout   time.Duration
	MaxCallStackSize  int

	startTime time.Time
	running   bool
}

// New returns a Limits populated with the spec's defaults.
func New() *Limits {
	return &Limits{
		MaxRecursionDepth: MaxRecursionDepth,
		MaxLoopIterations: MaxLoopIterations,
		MaxStringLength:   MaxStringLength,
		MaxArrayLength:    MaxArrayLength,
		MaxObjectKeys:     MaxObjectKeys,
		MaxEventHandlers:  MaxEventHandlers,
		CurrentTimeout:    DefaultExecutionTimeout,
		AutoexecTimeout:   AutoexecTimeout,
		MaxCallStackSize:  MaxCallStackSize,
	}
}

// StartExecution stamps the start time for timeout tracking. A
// timeout of 0 or less disables the check.
func (l *Limits) StartExecution(timeout time.Duration) {
	l.startTime = time.Now()
	l.running = true
	l.CurrentTimeout = timeout
}

// StopExecution clears the running flag.
func (l *Limits) StopExecution() {
	l.running = false
}

// CheckTimeout raises a TimeoutError once the elapsed time since
// StartExecution exceeds CurrentTimeout, when CurrentTimeout > 0.
func (l *Limits) CheckTimeout() error {
	if !l.running || l.CurrentTimeout <= 0 {
		return nil
	}
	if time.Since(l.startTime) > l.CurrentTimeout {
		return &TimeoutError{Timeout: l.CurrentTimeout}
	}
	return nil
}

// ClampLoopIterations truncates count into [0, MaxLoopIterations],
// logging when it does so.
func (l *Limits) ClampLoopIterations(count int) int {
	if count < 0 {
		return 0
	}
	if count > l.MaxLoopIterations {
		log.Printf("safety: loop iteration count %d clamped to %d", count, l.MaxLoopIterations)
		return l.MaxLoopIterations
	}
	return count
}

// ClampStringLength truncates s to MaxStringLength runes if needed.
func (l *Limits) ClampStringLength(s string) string {
	r := []rune(s)
	if len(r) > l.MaxStringLength {
		log.Printf("safety: string length %d clamped to %d", len(r), l.MaxStringLength)
		return string(r[:l.MaxStringLength])
	}
	return s
}

// ClampArrayLength truncates n to MaxArrayLength elements' worth.
func (l *Limits) ClampArrayLength(n int) int {
	if n > l.MaxArrayLength {
		log.Printf("safety: array length %d clamped to %d", n, l.MaxArrayLength)
		return l.MaxArrayLength
	}
	return n
}

// CheckRecursionDepth raises a RecursionError when depth exceeds the
// configured maximum.
func (l *Limits) CheckRecursionDepth(depth int, functionName string) error {
	if depth > l.MaxRecursionDepth {
		return &RecursionError{MaxDepth: l.MaxRecursionDepth, FunctionName: functionName}
	}
	return nil
}

// CheckEventHandlerCount raises an EventHandlerLimitError when count
// would exceed the configured maximum.
func (l *Limits) CheckEventHandlerCount(count int) error {
	if count > l.MaxEventHandlers {
		return &EventHandlerLimitError{Max: l.MaxEventHandlers}
	}
	return nil
}
