package compoff

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"go-hrms/internal/balance"
	compofferrors "go-hrms/internal/compoff/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/notification"
	"go-hrms/internal/shared/dateutil"
	usererrors "go-hrms/internal/user/errors"

	"go-hrms/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=compoff_service.go -destination=mock/compoff_service_mock.go -package=mock
type Service interface {
	Grant(ctx context.Context, req GrantCompOffRequest) (CompOffResponse, error)
	GetAll(ctx context.Context) ([]CompOffResponse, error)
	GetOwn(ctx context.Context, actorID string) ([]CompOffResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	users    user.Repository
	ledger   balance.Ledger
	notifier notification.Gateway
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	ledger balance.Ledger,
	notifier notification.Gateway,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("compoff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compoff.service")
	}
	return &service{db: db, repo: repo, users: users, ledger: ledger, notifier: notifier, logger: l}
}

func (s *service) Grant(ctx context.Context, req GrantCompOffRequest) (CompOffResponse, error) {
	s.logger.Debug("grant comp off",
		zap.String("user_id", req.UserID),
		zap.String("work_date", req.WorkDate),
	)

	duration := req.Duration
	if duration == 0 {
		duration = 1
	}
	if duration <= 0 || math.Mod(duration*2, 1) != 0 {
		return CompOffResponse{}, compofferrors.ErrInvalidDuration
	}

	workDate, err := dateutil.ParseDay(req.WorkDate)
	if err != nil {
		return CompOffResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("grant comp off begin tx failed", zap.Error(err))
		return CompOffResponse{}, err
	}
	defer tx.Rollback()

	u, err := s.users.WithTx(tx).FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompOffResponse{}, usererrors.ErrUserNotFound
		}
		return CompOffResponse{}, err
	}
	if !u.IsActive {
		return CompOffResponse{}, usererrors.ErrUserInactive
	}

	c := &CompOff{
		ID:       uuid.New(),
		UserID:   u.ID,
		WorkDate: workDate,
		Duration: duration,
		Status:   StatusApproved,
		Note:     req.Note,
	}
	if err := s.repo.WithTx(tx).Create(ctx, c); err != nil {
		s.logger.Error("grant comp off persist failed", zap.Error(err))
		return CompOffResponse{}, err
	}
	if err := s.ledger.Apply(ctx, tx, req.UserID, balance.KindCompOff, duration, c.ID.String()); err != nil {
		return CompOffResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("grant comp off commit failed", zap.Error(err))
		return CompOffResponse{}, err
	}

	s.logger.Info("grant comp off success",
		zap.String("comp_off_id", c.ID.String()),
		zap.String("user_id", req.UserID),
		zap.Float64("duration", duration),
	)

	resp := mapToResponse(*c)
	s.notifier.NotifyUser(ctx, req.UserID, events.EventCompOffGranted, resp)
	return resp, nil
}

func (s *service) GetAll(ctx context.Context) ([]CompOffResponse, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) GetOwn(ctx context.Context, actorID string) ([]CompOffResponse, error) {
	list, err := s.repo.FindAllByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

// Delete menarik kembali grant yang belum terpakai dan mengembalikan
// saldo dalam transaksi yang sama.
func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return compofferrors.ErrCompOffNotFound
		}
		return err
	}
	if c.Status == StatusUsed {
		return compofferrors.ErrCompOffUsed
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete comp off persist failed", zap.Error(err))
		return err
	}
	if err := s.ledger.Apply(ctx, tx, c.UserID.String(), balance.KindCompOff, -c.Duration, c.ID.String()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete comp off commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete comp off success",
		zap.String("comp_off_id", id),
		zap.Float64("reversed", c.Duration),
	)
	return nil
}

func mapToResponse(c CompOff) CompOffResponse {
	return CompOffResponse{
		ID:       c.ID.String(),
		UserID:   c.UserID.String(),
		WorkDate: dateutil.FormatDay(c.WorkDate),
		Duration: c.Duration,
		Status:   c.Status,
		Note:     c.Note,
	}
}

func mapToListResponse(list []CompOff) []CompOffResponse {
	resp := make([]CompOffResponse, len(list))
	for i, c := range list {
		resp[i] = mapToResponse(c)
	}
	return resp
}
