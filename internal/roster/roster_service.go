package roster

import (
	"context"
	"errors"

	rostererrors "go-hrms/internal/roster/errors"
	"go-hrms/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var validWeekdays = map[string]bool{
	"Sunday": true, "Monday": true, "Tuesday": true, "Wednesday": true,
	"Thursday": true, "Friday": true, "Saturday": true,
}

//go:generate mockgen -source=roster_service.go -destination=mock/roster_service_mock.go -package=mock
type Service interface {
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
	CreateWeeklyOff(ctx context.Context, req CreateWeeklyOffRequest) (WeeklyOffResponse, error)
	ListWeeklyOffs(ctx context.Context, userID string) ([]WeeklyOffResponse, error)
	DeleteWeeklyOff(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("roster.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("roster.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := dateutil.ParseDay(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	h := &Holiday{ID: uuid.New(), Date: date, Name: req.Name}
	if err := s.repo.CreateHoliday(ctx, h); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return HolidayResponse{}, rostererrors.ErrHolidayExists
		}
		s.logger.Error("create holiday failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.logger.Info("create holiday success",
		zap.String("date", dateutil.FormatDay(date)),
		zap.String("name", req.Name),
	)
	return mapHoliday(*h), nil
}

func (s *service) ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error) {
	list, err := s.repo.ListHolidays(ctx, year)
	if err != nil {
		return nil, err
	}
	resp := make([]HolidayResponse, len(list))
	for i, h := range list {
		resp[i] = mapHoliday(h)
	}
	return resp, nil
}

func (s *service) DeleteHoliday(ctx context.Context, id string) error {
	return s.repo.DeleteHoliday(ctx, id)
}

func (s *service) CreateWeeklyOff(ctx context.Context, req CreateWeeklyOffRequest) (WeeklyOffResponse, error) {
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return WeeklyOffResponse{}, rostererrors.ErrWeeklyOffShape
	}

	isFixed := true
	if req.IsFixed != nil {
		isFixed = *req.IsFixed
	}

	w := &WeeklyOff{
		ID:      uuid.New(),
		UserID:  userUUID,
		IsFixed: isFixed,
	}

	if isFixed {
		if req.OffDay == "" {
			return WeeklyOffResponse{}, rostererrors.ErrWeeklyOffShape
		}
		if !validWeekdays[req.OffDay] {
			return WeeklyOffResponse{}, rostererrors.ErrInvalidWeekday
		}
		w.OffDay = req.OffDay
	} else {
		if req.OffDate == "" {
			return WeeklyOffResponse{}, rostererrors.ErrWeeklyOffShape
		}
		date, err := dateutil.ParseDay(req.OffDate)
		if err != nil {
			return WeeklyOffResponse{}, err
		}
		w.OffDate = &date
	}

	if err := s.repo.CreateWeeklyOff(ctx, w); err != nil {
		s.logger.Error("create weekly off failed", zap.Error(err))
		return WeeklyOffResponse{}, err
	}

	s.logger.Info("create weekly off success",
		zap.String("user_id", req.UserID),
		zap.Bool("is_fixed", isFixed),
	)
	return mapWeeklyOff(*w), nil
}

func (s *service) ListWeeklyOffs(ctx context.Context, userID string) ([]WeeklyOffResponse, error) {
	list, err := s.repo.ListWeeklyOffsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]WeeklyOffResponse, len(list))
	for i, w := range list {
		resp[i] = mapWeeklyOff(w)
	}
	return resp, nil
}

func (s *service) DeleteWeeklyOff(ctx context.Context, id string) error {
	return s.repo.DeleteWeeklyOff(ctx, id)
}

func mapHoliday(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID.String(),
		Date: dateutil.FormatDay(h.Date),
		Name: h.Name,
	}
}

func mapWeeklyOff(w WeeklyOff) WeeklyOffResponse {
	resp := WeeklyOffResponse{
		ID:      w.ID.String(),
		UserID:  w.UserID.String(),
		IsFixed: w.IsFixed,
		OffDay:  w.OffDay,
	}
	if w.OffDate != nil {
		v := dateutil.FormatDay(*w.OffDate)
		resp.OffDate = &v
	}
	return resp
}
