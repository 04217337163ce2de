package jobcontext

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	keyJobID   contextKey = "job_id"
	keyJobType contextKey = "job_type"
)

// jobTimeout bounds a single background job run
const jobTimeout = 5 * time.Minute

// JobBegin derives a context carrying the job's identity with the standard
// job timeout applied. The returned cancel func must be called when the job
// finishes.
func JobBegin(parentCtx context.Context, jobID uuid.UUID, jobType string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, jobTimeout)
	ctx = context.WithValue(ctx, keyJobID, jobID)
	ctx = context.WithValue(ctx, keyJobType, jobType)
	return ctx, cancel
}

// JobEnd runs the job function once, converting panics into errors and
// annotating failures with the job identity from the context. Retry policy
// belongs to the job itself, not this wrapper.
func JobEnd(ctx context.Context, jobFunc func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = annotate(ctx, fmt.Errorf("panic recovered: %v", p))
		}
	}()

	if ctx.Err() != nil {
		return annotate(ctx, fmt.Errorf("context done before job execution: %w", ctx.Err()))
	}

	if err := jobFunc(ctx); err != nil {
		return annotate(ctx, err)
	}
	return nil
}

// GetJobID extracts the job ID from the context
func GetJobID(ctx context.Context) (uuid.UUID, bool) {
	jobID, ok := ctx.Value(keyJobID).(uuid.UUID)
	return jobID, ok
}

// GetJobType extracts the job type from the context
func GetJobType(ctx context.Context) (string, bool) {
	jobType, ok := ctx.Value(keyJobType).(string)
	return jobType, ok
}

func annotate(ctx context.Context, err error) error {
	jobType, hasType := GetJobType(ctx)
	jobID, hasID := GetJobID(ctx)
	if !hasType && !hasID {
		return err
	}
	return fmt.Errorf("%s job %s: %w", jobType, jobID, err)
}
