package autoleave

import (
	"context"
	"time"

	"go-hrms/internal/shared/dateutil"

	"go.uber.org/zap"
)

// Job malam jalan 18:03 waktu kantor, mengikuti jadwal cron lama
// "3 18 * * *".
const (
	runHour   = 18
	runMinute = 3
)

type Scheduler struct {
	service Service
	logger  *zap.Logger
	now     func() time.Time
}

func NewScheduler(service Service, logger ...*zap.Logger) *Scheduler {
	l := zap.L().Named("autoleave.scheduler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("autoleave.scheduler")
	}
	return &Scheduler{service: service, logger: l, now: time.Now}
}

// Start memblokir sampai ctx dibatalkan; panggil dari goroutine worker.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("auto leave scheduler started")

	for {
		next := s.nextRun(s.now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("auto leave scheduler stopped")
			return
		case <-timer.C:
		}

		runDate := dateutil.OfficeToday(s.now())
		if _, err := s.service.MarkAutoLeavesForDate(ctx, runDate); err != nil {
			s.logger.Error("scheduled auto leave run failed",
				zap.String("date", dateutil.FormatDay(runDate)),
				zap.Error(err),
			)
		}
	}
}

// nextRun mengembalikan instan UTC dari jam 18:03 kantor berikutnya.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	office := now.In(dateutil.OfficeLocation)
	next := time.Date(office.Year(), office.Month(), office.Day(), runHour, runMinute, 0, 0, dateutil.OfficeLocation)
	if !next.After(office) {
		next = next.AddDate(0, 0, 1)
	}
	return next.UTC()
}
