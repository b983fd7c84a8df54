package cloudconfig

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"time"
)

// ErrHandlerPanic wraps a value recovered from a panicking handler.
var ErrHandlerPanic = errors.New("directive handler panicked")

// Outcome is the result of one directive.
type Outcome string

// Directive outcomes.
const (
	OutcomeDone        Outcome = "done"
	OutcomeUnsupported Outcome = "unsupported"
	OutcomeFailed      Outcome = "failed"
)

// Result describes what happened to one directive.
type Result struct {
	Name     string
	Priority int
	Outcome  Outcome
	Err      error
	Duration time.Duration
}

// Recorder observes directive results, for example to export metrics.
type Recorder interface {
	ObserveDirective(name, outcome string, duration time.Duration)
}

// Step is one entry of an execution plan.
type Step struct {
	Directive
	Priority  int
	Supported bool
}

// Executor runs the directives of one document in priority order.
type Executor struct {
	steps    []Step
	registry *Registry
	recorder Recorder
}

// Option configures an Executor.
type Option func(*Executor)

// WithRecorder reports every directive result to r.
func WithRecorder(r Recorder) Option {
	return func(e *Executor) {
		e.recorder = r
	}
}

// NewExecutor orders directives by their priority under order. Directives
// with equal priority keep document order.
func NewExecutor(directives []Directive, order []string, registry *Registry, opts ...Option) *Executor {
	steps := make([]Step, len(directives))
	for i, d := range directives {
		_, supported := registry.Lookup(d.Name)
		steps[i] = Step{
			Directive: d,
			Priority:  Priority(d.Name, order),
			Supported: supported,
		}
	}
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Priority < steps[j].Priority
	})

	e := &Executor{steps: steps, registry: registry}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Plan returns the ordered steps without running them.
func (e *Executor) Plan() []Step {
	out := make([]Step, len(e.steps))
	copy(out, e.steps)
	return out
}

// Execute runs every directive in order. A directive that is unknown,
// returns an error or panics is logged and skipped; it never stops the
// directives after it. The returned results are informational.
func (e *Executor) Execute(ctx *Context) []Result {
	results := make([]Result, 0, len(e.steps))

	for i, step := range e.steps {
		log := ctx.Log.WithValues("directive", step.Name, "step", fmt.Sprintf("%d/%d", i+1, len(e.steps)))
		res := Result{Name: step.Name, Priority: step.Priority}

		handler, ok := e.registry.Lookup(step.Name)
		if !ok {
			log.Error(nil, "directive is not supported")
			res.Outcome = OutcomeUnsupported
			e.record(res)
			results = append(results, res)
			continue
		}

		log.V(1).Info("processing directive", "priority", step.Priority)
		start := time.Now()
		err := run(ctx.withLogger(log), handler, step.Payload)
		res.Duration = time.Since(start)

		if err != nil {
			log.Error(err, "processing directive failed")
			res.Outcome = OutcomeFailed
			res.Err = err
		} else {
			log.Info("directive completed", "duration", res.Duration.Round(time.Millisecond).String())
			res.Outcome = OutcomeDone
		}

		e.record(res)
		results = append(results, res)
	}

	return results
}

func (e *Executor) record(res Result) {
	if e.recorder != nil {
		e.recorder.ObserveDirective(res.Name, string(res.Outcome), res.Duration)
	}
}

// run is the failure boundary around a single handler.
func run(ctx *Context, h Handler, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v\n%s", ErrHandlerPanic, r, debug.Stack())
		}
	}()
	return h.Execute(ctx, payload)
}
