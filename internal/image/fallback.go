package imagepkg

import (
	"errors"
	"fmt"
	"strings"
)

// Stage is one strategy in a fallback chain.
type Stage[T any] struct {
	Name string
	Run  func() (T, error)
}

// StageError records why a stage was skipped.
type StageError struct {
	Stage string
	Err   error
}

func (e StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e StageError) Unwrap() error {
	return e.Err
}

// Outcome tells which stage produced a value and which stages failed before it.
type Outcome struct {
	Stage    string
	Failures []StageError
}

// Degraded reports whether at least one earlier stage failed.
func (o Outcome) Degraded() bool {
	return len(o.Failures) > 0
}

// Err joins the recorded failures, or returns nil.
func (o Outcome) Err() error {
	if len(o.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(o.Failures))
	for _, f := range o.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// Merge appends the failures of another outcome, keeping o's stage.
func (o Outcome) Merge(other Outcome) Outcome {
	o.Failures = append(o.Failures, other.Failures...)
	return o
}

func (o Outcome) String() string {
	if !o.Degraded() {
		return o.Stage
	}
	names := make([]string, 0, len(o.Failures))
	for _, f := range o.Failures {
		names = append(names, f.Stage)
	}
	return fmt.Sprintf("%s (after %s)", o.Stage, strings.Join(names, ", "))
}

// RunStages tries stages in order and returns the first success. A panic in a
// stage counts as that stage failing with ErrRender. The error is non-nil
// only when every stage failed.
func RunStages[T any](stages ...Stage[T]) (T, Outcome, error) {
	var out Outcome
	for _, s := range stages {
		v, err := runStage(s)
		if err == nil {
			out.Stage = s.Name
			return v, out, nil
		}
		out.Failures = append(out.Failures, StageError{Stage: s.Name, Err: err})
	}
	var zero T
	return zero, out, fmt.Errorf("all %d stages failed: %w", len(stages), out.Err())
}

func runStage[T any](s Stage[T]) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic in %s: %v", ErrRender, s.Name, r)
		}
	}()
	return s.Run()
}
