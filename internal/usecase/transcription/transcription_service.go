package transcription

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hospitalvoice/booking-agent/internal/domain/entities"
	"github.com/hospitalvoice/booking-agent/internal/domain/repositories"
	"github.com/hospitalvoice/booking-agent/internal/infrastructure/storage"
	usecaseErrors "github.com/hospitalvoice/booking-agent/internal/usecase/errors"
	"github.com/hospitalvoice/booking-agent/pkg/ai"
	"github.com/hospitalvoice/booking-agent/pkg/jobcontext"
)

// recordingURLExpiry must outlive the transcription provider's fetch window
const recordingURLExpiry = 2 * time.Hour

// Service fills call logs with transcripts from stored recordings
type Service struct {
	callLogRepo repositories.CallLogRepository
	store       *storage.RecordingStore
	transcriber ai.Transcriber
	logger      *zap.Logger
}

// NewService creates a transcription service
func NewService(
	callLogRepo repositories.CallLogRepository,
	store *storage.RecordingStore,
	transcriber ai.Transcriber,
	logger *zap.Logger,
) *Service {
	return &Service{
		callLogRepo: callLogRepo,
		store:       store,
		transcriber: transcriber,
		logger:      logger,
	}
}

// TranscribeCallLog fetches the recording of a call log, submits it for
// transcription with bounded retry and stores the transcript and sentiment
func (s *Service) TranscribeCallLog(ctx context.Context, callLogID uuid.UUID) error {
	jobCtx, cancel := jobcontext.JobBegin(ctx, callLogID, "transcription")
	defer cancel()

	return jobcontext.JobEnd(jobCtx, func(ctx context.Context) error {
		callLog, err := s.callLogRepo.FindByID(ctx, callLogID)
		if err != nil {
			return fmt.Errorf("failed to load call log: %w", err)
		}
		if !callLog.HasRecording() {
			return usecaseErrors.ErrRecordingNotFound
		}

		audioURL, err := s.store.RecordingURL(ctx, callLog.RecordingURL, recordingURLExpiry)
		if err != nil {
			return fmt.Errorf("failed to presign recording: %w", err)
		}

		var result *ai.TranscriptResult
		operation := func() error {
			var trErr error
			result, trErr = s.transcriber.Transcribe(ctx, audioURL)
			return trErr
		}

		policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
		if err := backoff.Retry(operation, policy); err != nil {
			return fmt.Errorf("transcription failed: %w", err)
		}

		callLog.Transcript = result.Text
		callLog.Sentiment = entities.CallSentiment(result.Sentiment)
		if err := s.callLogRepo.Update(ctx, callLog); err != nil {
			return fmt.Errorf("failed to store transcript: %w", err)
		}

		s.logger.Info("call log transcribed",
			zap.String("call_log_id", callLogID.String()),
			zap.String("sentiment", result.Sentiment),
			zap.Int("transcript_len", len(result.Text)))
		return nil
	})
}
