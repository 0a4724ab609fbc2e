// Package staging collects writes that must land together.
//
// Actions are queued with Add and run in order by Commit. When one fails,
// the actions that already ran are rolled back in reverse order, so a
// batch either lands completely or leaves the store as it found it.
package staging

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrAlreadyCommitted is returned when a batch is used after Commit.
var ErrAlreadyCommitted = errors.New("batch already committed")

// Action is one staged write and its compensation.
type Action interface {
	// Execute performs the write.
	Execute(ctx context.Context) error

	// Rollback undoes a successful Execute.
	Rollback(ctx context.Context) error

	// Description names the action in errors and logs.
	Description() string
}

// CommitError reports the action that failed and any rollback that failed after it.
type CommitError struct {
	Action      string
	Cause       error
	RolledBack  int
	RollbackErr error
}

func (e *CommitError) Error() string {
	msg := fmt.Sprintf("action %q failed: %v", e.Action, e.Cause)
	if e.RollbackErr != nil {
		msg += fmt.Sprintf(" (rollback incomplete: %v)", e.RollbackErr)
	}

	return msg
}

func (e *CommitError) Unwrap() []error {
	if e.RollbackErr == nil {
		return []error{e.Cause}
	}

	return []error{e.Cause, e.RollbackErr}
}

// Batch is an ordered set of staged actions. It is safe for concurrent Add.
type Batch struct {
	mu        sync.Mutex
	actions   []Action
	committed bool
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Add queues an action.
func (b *Batch) Add(action Action) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.committed {
		return ErrAlreadyCommitted
	}

	b.actions = append(b.actions, action)

	return nil
}

// Commit executes every action in order. A batch can be committed once.
//
// Rollbacks run with a context detached from ctx's cancellation, since a
// canceled request is a common reason for the failure being compensated.
func (b *Batch) Commit(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.committed {
		return ErrAlreadyCommitted
	}

	b.committed = true

	for i, action := range b.actions {
		if err := action.Execute(ctx); err != nil {
			return &CommitError{
				Action:      action.Description(),
				Cause:       err,
				RolledBack:  i,
				RollbackErr: rollback(context.WithoutCancel(ctx), b.actions[:i]),
			}
		}
	}

	return nil
}

func rollback(ctx context.Context, done []Action) error {
	var errs []error

	for i := len(done) - 1; i >= 0; i-- {
		if err := done[i].Rollback(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", done[i].Description(), err))
		}
	}

	return errors.Join(errs...)
}
