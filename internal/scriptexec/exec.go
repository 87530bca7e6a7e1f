package scriptexec

import (
	"errors"
	"strings"
	"sync"

	sh "devconsole/internal/scripthelpers"
	sr "devconsole/internal/scriptruntime"
	"devconsole/internal/scrollback"
)

const (
	MessageNotReady    = "Evaluation context not ready"
	MessageDeclaration = "Declaration executed"
	MessageUndefined   = "undefined"
)

// Engine is the evaluation context the evaluator drives.
type Engine interface {
	Run(prefix, fragment string) (sr.Result, error)
	Reset()
}

// Outcome reports what happened to a submission.
type Outcome int

const (
	Rejected Outcome = iota
	Committed
	Failed
	NotReady
)

func (o Outcome) String() string {
	switch o {
	case Committed:
		return "committed"
	case Failed:
		return "failed"
	case NotReady:
		return "not-ready"
	default:
		return "rejected"
	}
}

// Dependencies wires the evaluator to its surroundings.
type Dependencies struct {
	// Engine may be nil while the evaluation context is not established.
	Engine     Engine
	AppendLine func(tag scrollback.Tag, text string)
}

// Evaluator owns the accumulated program: the text of every submission that
// evaluated without throwing since the context was last reset. Each
// submission is evaluated together with that text so declarations persist
// across submissions; the cost over a session is quadratic in its length.
type Evaluator struct {
	mu      sync.Mutex
	deps    Dependencies
	program string
}

func New(deps Dependencies) *Evaluator {
	return &Evaluator{deps: deps}
}

// Submit evaluates input against the accumulated program. Success commits
// input to the program; failure leaves the program untouched.
func (e *Evaluator) Submit(input string) Outcome {
	if strings.TrimSpace(input) == "" {
		return Rejected
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.deps.Engine == nil {
		e.append(scrollback.TagError, MessageNotReady)
		return NotReady
	}

	res, err := e.deps.Engine.Run(e.program, input)
	if err != nil {
		if errors.Is(err, sr.ErrNotEstablished) {
			e.append(scrollback.TagError, MessageNotReady)
			return NotReady
		}
		e.append(scrollback.TagError, errorMessage(err))
		return Failed
	}

	if e.program == "" {
		e.program = input
	} else {
		e.program = e.program + "\n" + input
	}

	switch {
	case res.Defined:
		e.append(scrollback.TagOutput, res.Text)
	case sh.IsDeclaration(input):
		e.append(scrollback.TagSystem, MessageDeclaration)
	default:
		e.append(scrollback.TagOutput, MessageUndefined)
	}
	return Committed
}

// Reset empties the program and recreates the evaluation context.
func (e *Evaluator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.program = ""
	if e.deps.Engine != nil {
		e.deps.Engine.Reset()
	}
}

// Program returns the accumulated program text.
func (e *Evaluator) Program() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.program
}

func (e *Evaluator) append(tag scrollback.Tag, text string) {
	if e.deps.AppendLine != nil {
		e.deps.AppendLine(tag, text)
	}
}

func errorMessage(err error) string {
	var evalErr *sr.EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Message
	}
	return err.Error()
}
