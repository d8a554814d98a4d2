package autoleave

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/attendance"
	"go-hrms/internal/compoff"
	"go-hrms/internal/leave"
	"go-hrms/internal/roster"
	"go-hrms/internal/shared/dateutil"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const systemReason = "System: auto-marked unpaid leave, no attendance recorded"

// RunResult merangkum satu eksekusi untuk endpoint admin dan log.
type RunResult struct {
	RunDate   string `json:"run_date"`
	Candidate int    `json:"candidate_count"`
	Eligible  int    `json:"eligible_count"`
	Created   int    `json:"created_count"`
	Holiday   bool   `json:"holiday"`
}

//go:generate mockgen -source=autoleave_service.go -destination=mock/autoleave_service_mock.go -package=mock
type Service interface {
	// MarkAutoLeavesForDate menandai cuti UNPAID otomatis untuk semua
	// user aktif non-admin yang tidak punya jejak kehadiran pada tanggal
	// tersebut. Aman diulang: user yang sudah tertutup cuti APPROVED
	// tersaring pada run berikutnya.
	MarkAutoLeavesForDate(ctx context.Context, date time.Time) (RunResult, error)
	ListRuns(ctx context.Context, limit int) ([]AutoLeaveRun, error)
}

type service struct {
	db          *sql.DB
	runs        Repository
	users       user.Repository
	leaves      leave.Repository
	attendances attendance.Repository
	compOffs    compoff.Repository
	roster      roster.Repository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	runs Repository,
	users user.Repository,
	leaves leave.Repository,
	attendances attendance.Repository,
	compOffs compoff.Repository,
	rosterRepo roster.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("autoleave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("autoleave.service")
	}
	return &service{
		db:          db,
		runs:        runs,
		users:       users,
		leaves:      leaves,
		attendances: attendances,
		compOffs:    compOffs,
		roster:      rosterRepo,
		logger:      l,
	}
}

func (s *service) MarkAutoLeavesForDate(ctx context.Context, date time.Time) (RunResult, error) {
	day := dateutil.Day(date)
	startedAt := time.Now().UTC()
	result := RunResult{RunDate: dateutil.FormatDay(day)}

	s.logger.Info("auto leave run started", zap.String("date", result.RunDate))

	holiday, err := s.roster.HolidayOn(ctx, day)
	if err != nil {
		s.logger.Error("auto leave holiday lookup failed", zap.Error(err))
		return result, err
	}
	if holiday != nil {
		result.Holiday = true
		s.logger.Info("auto leave run skipped, holiday",
			zap.String("date", result.RunDate),
			zap.String("holiday", holiday.Name),
		)
		s.recordRun(ctx, day, startedAt, result)
		return result, nil
	}

	candidates, err := s.users.ActiveNonAdminIDs(ctx)
	if err != nil {
		s.logger.Error("auto leave candidate lookup failed", zap.Error(err))
		return result, err
	}
	result.Candidate = len(candidates)
	if len(candidates) == 0 {
		s.recordRun(ctx, day, startedAt, result)
		return result, nil
	}

	// Satu query batch per penyaring, bukan satu query per user.
	exempt, err := s.exemptSets(ctx, candidates, day)
	if err != nil {
		return result, err
	}

	var eligible []uuid.UUID
	for _, id := range candidates {
		skip, reason := exempt.lookup(id)
		if skip {
			s.logger.Debug("auto leave user exempt",
				zap.String("user_id", id.String()),
				zap.String("reason", reason),
			)
			continue
		}
		eligible = append(eligible, id)
	}
	result.Eligible = len(eligible)

	if len(eligible) > 0 {
		created, err := s.insertAutoLeaves(ctx, eligible, day)
		if err != nil {
			return result, err
		}
		result.Created = created
	}

	s.recordRun(ctx, day, startedAt, result)
	s.logger.Info("auto leave run finished",
		zap.String("date", result.RunDate),
		zap.Int("candidates", result.Candidate),
		zap.Int("eligible", result.Eligible),
		zap.Int("created", result.Created),
	)
	return result, nil
}

type exemptSets struct {
	weeklyOff  map[uuid.UUID]bool
	onLeave    map[uuid.UUID]bool
	compOff    map[uuid.UUID]bool
	hasAttRows map[uuid.UUID]bool
}

func (e exemptSets) lookup(id uuid.UUID) (bool, string) {
	switch {
	case e.weeklyOff[id]:
		return true, "weekly off"
	case e.onLeave[id]:
		return true, "approved leave covers date"
	case e.compOff[id]:
		return true, "comp off granted for date"
	case e.hasAttRows[id]:
		return true, "attendance recorded"
	}
	return false, ""
}

func (s *service) exemptSets(ctx context.Context, candidates []uuid.UUID, day time.Time) (exemptSets, error) {
	sets := exemptSets{}

	weeklyOff, err := s.roster.WeeklyOffUserIDs(ctx, candidates, day)
	if err != nil {
		s.logger.Error("auto leave weekly off lookup failed", zap.Error(err))
		return sets, err
	}
	onLeave, err := s.leaves.CoveringApprovedUserIDs(ctx, candidates, day)
	if err != nil {
		s.logger.Error("auto leave covering leave lookup failed", zap.Error(err))
		return sets, err
	}
	compOff, err := s.compOffs.ApprovedGrantUserIDs(ctx, candidates, day)
	if err != nil {
		s.logger.Error("auto leave comp off lookup failed", zap.Error(err))
		return sets, err
	}
	attRows, err := s.attendances.ExistsByUsersOnDate(ctx, candidates, day)
	if err != nil {
		s.logger.Error("auto leave attendance lookup failed", zap.Error(err))
		return sets, err
	}

	sets.weeklyOff = toSet(weeklyOff)
	sets.onLeave = toSet(onLeave)
	sets.compOff = toSet(compOff)
	sets.hasAttRows = toSet(attRows)
	return sets, nil
}

// insertAutoLeaves menulis semua cuti otomatis dalam satu transaksi:
// semua masuk atau tidak sama sekali.
func (s *service) insertAutoLeaves(ctx context.Context, eligible []uuid.UUID, day time.Time) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("auto leave begin tx failed", zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	reason := systemReason
	batch := make([]leave.Leave, len(eligible))
	for i, id := range eligible {
		batch[i] = leave.Leave{
			ID:        uuid.New(),
			UserID:    id,
			Type:      leave.TypeUnpaid,
			StartDate: day,
			EndDate:   day,
			Reason:    reason,
			Status:    leave.StatusApproved,
		}
	}

	if err := s.leaves.WithTx(tx).CreateBatch(ctx, batch); err != nil {
		s.logger.Error("auto leave bulk insert failed",
			zap.Int("batch_size", len(batch)),
			zap.Error(err),
		)
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("auto leave commit failed", zap.Error(err))
		return 0, err
	}
	return len(batch), nil
}

// recordRun hanya observability; kegagalan dicatat dan diabaikan.
func (s *service) recordRun(ctx context.Context, day time.Time, startedAt time.Time, result RunResult) {
	run := &AutoLeaveRun{
		ID:             uuid.New(),
		RunDate:        day,
		CandidateCount: result.Candidate,
		EligibleCount:  result.Eligible,
		CreatedCount:   result.Created,
		StartedAt:      startedAt,
		FinishedAt:     time.Now().UTC(),
	}
	if err := s.runs.RecordRun(ctx, run); err != nil {
		s.logger.Error("auto leave audit write failed", zap.Error(err))
	}
}

func (s *service) ListRuns(ctx context.Context, limit int) ([]AutoLeaveRun, error) {
	return s.runs.ListRuns(ctx, limit)
}

func toSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
