package jobcontext

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobBegin_CarriesIdentity(t *testing.T) {
	jobID := uuid.New()
	ctx, cancel := JobBegin(context.Background(), jobID, "transcription")
	defer cancel()

	gotID, ok := GetJobID(ctx)
	require.True(t, ok)
	assert.Equal(t, jobID, gotID)

	gotType, ok := GetJobType(ctx)
	require.True(t, ok)
	assert.Equal(t, "transcription", gotType)

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.False(t, deadline.IsZero())
}

func TestJobEnd_RunsOnce(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), uuid.New(), "transcription")
	defer cancel()

	calls := 0
	sentinel := errors.New("provider unavailable")
	err := JobEnd(ctx, func(context.Context) error {
		calls++
		return sentinel
	})

	// The wrapper never retries; the job owns its retry policy
	assert.Equal(t, 1, calls)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "transcription job")
}

func TestJobEnd_Success(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), uuid.New(), "transcription")
	defer cancel()

	err := JobEnd(ctx, func(context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestJobEnd_RecoversPanic(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), uuid.New(), "transcription")
	defer cancel()

	err := JobEnd(ctx, func(context.Context) error { panic("boom") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic recovered: boom")
}

func TestJobEnd_CancelledBeforeRun(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), uuid.New(), "transcription")
	cancel()

	called := false
	err := JobEnd(ctx, func(context.Context) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
