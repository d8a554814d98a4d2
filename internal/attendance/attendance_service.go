package attendance

import (
	"context"
	"errors"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/dateutil"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Masuk setelah jam ini (waktu kantor) dihitung LATE.
const lateCutoff = "09:30"

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, actorID string) (AttendanceResponse, error)
	ClockOut(ctx context.Context, actorID string) (AttendanceResponse, error)
	ListOwn(ctx context.Context, actorID string, q ListAttendanceQuery) ([]AttendanceResponse, error)
	ListForUser(ctx context.Context, actorID, role, userID string, q ListAttendanceQuery) ([]AttendanceResponse, error)
}

type service struct {
	repo   Repository
	users  user.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, users: users, logger: l, now: time.Now}
}

// NewServiceWithClock is used by tests that need a fixed wall clock.
func NewServiceWithClock(repo Repository, users user.Repository, now func() time.Time, logger ...*zap.Logger) Service {
	s := NewService(repo, users, logger...).(*service)
	s.now = now
	return s
}

func (s *service) ClockIn(ctx context.Context, actorID string) (AttendanceResponse, error) {
	userUUID, err := uuid.Parse(actorID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAccessDenied
	}

	now := s.now().UTC()
	today := dateutil.OfficeToday(now)

	existing, err := s.repo.FindByUserAndDate(ctx, actorID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("clock in lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	status := StatusPresent
	cutoff, err := dateutil.CombineOfficeTime(today, lateCutoff)
	if err == nil && now.After(cutoff) {
		status = StatusLate
	}

	a := &Attendance{
		ID:      uuid.New(),
		UserID:  userUUID,
		Date:    today,
		Status:  status,
		CheckIn: &now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("clock in persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock in success",
		zap.String("user_id", actorID),
		zap.String("date", dateutil.FormatDay(today)),
		zap.String("status", status),
	)
	return mapToResponse(*a), nil
}

func (s *service) ClockOut(ctx context.Context, actorID string) (AttendanceResponse, error) {
	now := s.now().UTC()
	today := dateutil.OfficeToday(now)

	a, err := s.repo.FindByUserAndDate(ctx, actorID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
		}
		s.logger.Error("clock out lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if a.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	a.CheckOut = &now
	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("clock out persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock out success",
		zap.String("user_id", actorID),
		zap.String("date", dateutil.FormatDay(today)),
	)
	return mapToResponse(*a), nil
}

func (s *service) ListOwn(ctx context.Context, actorID string, q ListAttendanceQuery) ([]AttendanceResponse, error) {
	return s.list(ctx, actorID, q)
}

func (s *service) ListForUser(ctx context.Context, actorID, role, userID string, q ListAttendanceQuery) ([]AttendanceResponse, error) {
	if role != user.RoleAdmin && actorID != userID {
		manages, err := s.users.IsManagerOf(ctx, actorID, userID)
		if err != nil {
			return nil, err
		}
		if !manages {
			return nil, attendanceerrors.ErrAccessDenied
		}
	}
	return s.list(ctx, userID, q)
}

func (s *service) list(ctx context.Context, userID string, q ListAttendanceQuery) ([]AttendanceResponse, error) {
	var from, to *time.Time
	if q.From != "" {
		d, err := dateutil.ParseDay(q.From)
		if err != nil {
			return nil, err
		}
		from = &d
	}
	if q.To != "" {
		d, err := dateutil.ParseDay(q.To)
		if err != nil {
			return nil, err
		}
		to = &d
	}

	list, err := s.repo.FindAllByUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]AttendanceResponse, len(list))
	for i, a := range list {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:     a.ID.String(),
		UserID: a.UserID.String(),
		Date:   dateutil.FormatDay(a.Date),
		Status: a.Status,
	}
	if a.CheckIn != nil {
		v := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}
