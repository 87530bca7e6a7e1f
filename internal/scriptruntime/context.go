package scriptruntime

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	sh "devconsole/internal/scripthelpers"
	"devconsole/internal/scrollback"

	"github.com/dop251/goja"
)

// LogFunc receives console output produced inside the evaluation context.
type LogFunc func(message string, tag scrollback.Tag, timestamp string)

// Result is the completion value of an evaluated fragment.
type Result struct {
	Defined bool
	Text    string
}

// EvalError is returned when a fragment fails to compile or throws.
type EvalError struct {
	Message string
	Err     error
}

func (e *EvalError) Error() string { return e.Message }
func (e *EvalError) Unwrap() error { return e.Err }

// maxCallStackSize bounds recursion so runaway calls fail with a RangeError.
const maxCallStackSize = 10000

// stackOverflowMessage matches the message browsers show for the same failure.
const stackOverflowMessage = "RangeError: Maximum call stack size exceeded"

// ErrNotEstablished is returned by Run after Close.
var ErrNotEstablished = errors.New("evaluation context not established")

// Runtime is an isolated JavaScript scope with its own console. The scope
// lives until Reset or Close; each Run builds its successor.
type Runtime struct {
	mu   sync.Mutex
	logf LogFunc
	vm   *goja.Runtime
}

// New establishes an empty scope whose console forwards to logf.
func New(logf LogFunc) *Runtime {
	r := &Runtime{logf: logf}
	r.vm = r.fresh(new(bool))
	return r
}

// Run evaluates fragment on top of prefix in a fresh scope. prefix is the
// text of previously committed fragments; it is replayed with console output
// suppressed. On success the new scope replaces the live one and the
// fragment's completion value is returned. On failure the live scope is kept.
func (r *Runtime) Run(prefix, fragment string) (res Result, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.vm == nil {
		return Result{}, ErrNotEstablished
	}

	muted := true
	vm := r.fresh(&muted)
	defer func() {
		if rec := recover(); rec != nil {
			res = Result{}
			err = &EvalError{Message: fmt.Sprintf("panic: %v", rec)}
		}
	}()

	if strings.TrimSpace(prefix) != "" {
		if _, err := vm.RunString(prefix); err != nil {
			e := newEvalError(err)
			e.Message = "replay failed: " + e.Message
			return Result{}, e
		}
	}
	muted = false
	val, err := vm.RunString(fragment)
	if err != nil {
		return Result{}, newEvalError(err)
	}
	r.vm = vm
	if val == nil || goja.IsUndefined(val) {
		return Result{}, nil
	}
	return Result{Defined: true, Text: sh.ValueToString(vm, val)}, nil
}

// Reset tears the live scope down and establishes an empty one.
func (r *Runtime) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vm = r.fresh(new(bool))
}

// Close tears the live scope down without replacing it.
func (r *Runtime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vm = nil
}

// Established reports whether a live scope exists.
func (r *Runtime) Established() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vm != nil
}

// Lookup renders a global binding of the live scope. ok is false when the
// name is not bound.
func (r *Runtime) Lookup(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.vm == nil {
		return "", false
	}
	val, err := r.vm.RunString(name)
	if err != nil {
		return "", false
	}
	return sh.ValueToString(r.vm, val), true
}

func (r *Runtime) fresh(muted *bool) *goja.Runtime {
	vm := goja.New()
	vm.SetMaxCallStackSize(maxCallStackSize)
	console := vm.NewObject()
	bind := func(name string, tag scrollback.Tag) {
		_ = console.Set(name, func(call goja.FunctionCall) goja.Value {
			if !*muted {
				r.emit(tag, sh.BuildMessageFromArgs(vm, call.Arguments))
			}
			return goja.Undefined()
		})
	}
	bind("log", scrollback.TagEvalLog)
	bind("info", scrollback.TagEvalInfo)
	bind("warn", scrollback.TagEvalWarn)
	bind("error", scrollback.TagEvalError)
	_ = vm.Set("console", console)
	return vm
}

func (r *Runtime) emit(tag scrollback.Tag, message string) {
	if r.logf == nil {
		return
	}
	r.logf(message, tag, time.Now().UTC().Format(time.RFC3339Nano))
}

func newEvalError(err error) *EvalError {
	var overflow *goja.StackOverflowError
	if errors.As(err, &overflow) {
		return &EvalError{Message: stackOverflowMessage, Err: err}
	}
	var ex *goja.Exception
	if errors.As(err, &ex) && ex.Value() != nil {
		return &EvalError{Message: ex.Value().String(), Err: err}
	}
	return &EvalError{Message: err.Error(), Err: err}
}
