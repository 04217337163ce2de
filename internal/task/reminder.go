package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hospitalvoice/booking-agent/internal/domain/repositories"
)

// reminderWindow is how far ahead upcoming reservations are scanned
const reminderWindow = 24 * time.Hour

// ReminderTask periodically marks confirmed reservations starting soon as
// reminded
type ReminderTask struct {
	reservationRepo repositories.ReservationRepository
	logger          *zap.Logger
	cron            *cron.Cron
}

// NewReminderTask creates a reminder task
func NewReminderTask(reservationRepo repositories.ReservationRepository, logger *zap.Logger) *ReminderTask {
	return &ReminderTask{
		reservationRepo: reservationRepo,
		logger:          logger,
		cron:            cron.New(),
	}
}

// Start schedules the reminder sweep every fifteen minutes
func (t *ReminderTask) Start() error {
	if _, err := t.cron.AddFunc("*/15 * * * *", t.run); err != nil {
		return err
	}
	t.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (t *ReminderTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
}

func (t *ReminderTask) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(reminderWindow)
	reservations, err := t.reservationRepo.FindDueForReminder(ctx, cutoff)
	if err != nil {
		t.logger.Error("reminder sweep failed", zap.Error(err))
		return
	}

	for _, reservation := range reservations {
		reservation.MarkReminderSent()
		if err := t.reservationRepo.Update(ctx, reservation); err != nil {
			t.logger.Error("failed to mark reminder sent",
				zap.String("reservation_id", reservation.ID.String()),
				zap.Error(err))
			continue
		}
		t.logger.Info("reminder marked",
			zap.String("reservation_id", reservation.ID.String()),
			zap.Time("date", reservation.Date))
	}
}
