package app

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-service/internal/platform/logging"
	"github.com/jsamuelsen/quote-service/internal/platform/telemetry"
)

// Writes that span several stores run as validate, perform, verify, archive
// and respond. Nothing is persisted until perform's output is verified, and
// the caller only sees a result once archive has finished.

// Step names one stage of an Operation.
type Step string

const (
	StepValidate Step = "validate"
	StepPerform  Step = "perform"
	StepVerify   Step = "verify"
	StepArchive  Step = "archive"
	StepRespond  Step = "respond"
)

// StepError is what Execute returns when a stage fails. Err stays reachable
// through errors.Is and errors.As so domain kinds survive.
type StepError struct {
	Step   Step
	Reason string
	Err    error
}

func (e *StepError) Error() string {
	msg := string(e.Step) + " failed: " + e.Reason
	if e.Err == nil {
		return msg
	}

	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// StepOf reports the stage err came from, if Execute produced it.
func StepOf(err error) (Step, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step, true
	}

	return "", false
}

// Executor carries the logger and tracer shared by every Operation.
type Executor struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewExecutor falls back to slog.Default when logger is nil.
func NewExecutor(logger *slog.Logger) *Executor {
	return &Executor{
		logger: cmp.Or(logger, slog.Default()),
		tracer: telemetry.Tracer("app"),
	}
}

// Operation holds the stage functions of one use case. Nil stages are skipped
// and pass the zero value along.
type Operation[I, P, V, O any] struct {
	Name string

	Validate func(ctx context.Context, input I) error
	// Perform must not write anything; Archive does.
	Perform func(ctx context.Context, input I) (P, error)
	Verify  func(ctx context.Context, input I, performed P) (V, error)
	Archive func(ctx context.Context, input I, verified V) error
	Respond func(ctx context.Context, input I, verified V) (O, error)
}

type stage struct {
	step   Step
	reason string
	run    func() error
}

// Execute runs op's stages in order and stops at the first failure.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var (
		performed P
		verified  V
		result    O
	)

	ctx, span := exec.tracer.Start(ctx, "app."+op.Name)
	defer span.End()

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))

	stages := []stage{
		{StepValidate, "input validation failed", func() error {
			if op.Validate == nil {
				return nil
			}

			return op.Validate(ctx, input)
		}},
		{StepPerform, "operation failed", func() (err error) {
			if op.Perform != nil {
				performed, err = op.Perform(ctx, input)
			}

			return err
		}},
		{StepVerify, "verification failed", func() (err error) {
			if op.Verify != nil {
				verified, err = op.Verify(ctx, input, performed)
			}

			return err
		}},
		{StepArchive, "state persistence failed", func() error {
			if op.Archive == nil {
				return nil
			}

			return op.Archive(ctx, input, verified)
		}},
		{StepRespond, "response failed", func() (err error) {
			if op.Respond != nil {
				result, err = op.Respond(ctx, input, verified)
			}

			return err
		}},
	}

	began := time.Now()

	for _, s := range stages {
		t0 := time.Now()
		logger.DebugContext(ctx, "step started", slog.String("step", string(s.step)))

		err := s.run()
		if err == nil {
			span.AddEvent(string(s.step), trace.WithAttributes(
				attribute.Int64("duration_ms", time.Since(t0).Milliseconds())))

			continue
		}

		// Bad input and response shaping are caller problems, not ours.
		level := slog.LevelError
		if s.step == StepValidate || s.step == StepRespond {
			level = slog.LevelWarn
		}

		logger.Log(ctx, level, "step failed", slog.String("step", string(s.step)), slog.Any("error", err))

		failed := &StepError{Step: s.step, Reason: s.reason, Err: err}
		span.RecordError(failed)
		span.SetStatus(codes.Error, failed.Error())

		var zero O

		return zero, failed
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(began)))

	return result, nil
}
