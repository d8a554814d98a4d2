package correction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrms/internal/attendance"
	"go-hrms/internal/balance"
	correctionerrors "go-hrms/internal/correction/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/leave"
	"go-hrms/internal/notification"
	"go-hrms/internal/shared/dateutil"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Cuti harian yang digantikan koreksi ditolak dengan alasan ini.
const systemRejectReason = "Attendance was corrected to PRESENT for this date"

// Cuti jenis ini tidak pernah memotong leaveBalance, jadi tidak ada
// yang perlu dikembalikan saat koreksi disetujui.
var nonRefundableTypes = map[string]bool{
	leave.TypeWFH:     true,
	leave.TypeUnpaid:  true,
	leave.TypeCompOff: true,
}

//go:generate mockgen -source=correction_service.go -destination=mock/correction_service_mock.go -package=mock
type Service interface {
	Request(ctx context.Context, actorID string, req RequestCorrectionRequest) (CorrectionResponse, error)
	GetAll(ctx context.Context, status string) ([]CorrectionResponse, error)
	GetOwn(ctx context.Context, actorID string) ([]CorrectionResponse, error)
	Decide(ctx context.Context, actorID, role, id string, req DecideCorrectionRequest) (CorrectionResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	attendances attendance.Repository
	leaves      leave.Repository
	users       user.Repository
	ledger      balance.Ledger
	notifier    notification.Gateway
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	attendances attendance.Repository,
	leaves leave.Repository,
	users user.Repository,
	ledger balance.Ledger,
	notifier notification.Gateway,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("correction.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("correction.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		attendances: attendances,
		leaves:      leaves,
		users:       users,
		ledger:      ledger,
		notifier:    notifier,
		logger:      l,
	}
}

func (s *service) Request(ctx context.Context, actorID string, req RequestCorrectionRequest) (CorrectionResponse, error) {
	s.logger.Debug("request correction",
		zap.String("actor_id", actorID),
		zap.String("date", req.Date),
	)

	if req.Date == "" || req.CheckIn == "" || req.CheckOut == "" || req.Reason == "" ||
		(req.Witness == "" && req.WitnessID == "") {
		return CorrectionResponse{}, correctionerrors.ErrMissingFields
	}

	userUUID, err := uuid.Parse(actorID)
	if err != nil {
		return CorrectionResponse{}, correctionerrors.ErrAccessDenied
	}

	date, err := dateutil.ParseDay(req.Date)
	if err != nil {
		return CorrectionResponse{}, err
	}
	checkIn, err := dateutil.CombineOfficeTime(date, req.CheckIn)
	if err != nil {
		return CorrectionResponse{}, err
	}
	checkOut, err := dateutil.CombineOfficeTime(date, req.CheckOut)
	if err != nil {
		return CorrectionResponse{}, err
	}
	if !checkOut.After(checkIn) {
		return CorrectionResponse{}, correctionerrors.ErrCheckOutBeforeCheckIn
	}

	// Koreksi hanya masuk akal untuk hari yang tercatat ABSENT atau
	// tidak tercatat sama sekali.
	existing, err := s.attendances.FindByUserAndDate(ctx, actorID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("request correction attendance lookup failed", zap.Error(err))
		return CorrectionResponse{}, err
	}
	if existing != nil && existing.Status != attendance.StatusAbsent {
		return CorrectionResponse{}, correctionerrors.ErrAttendanceAlreadyMarked
	}

	witness, err := s.resolveWitness(ctx, req)
	if err != nil {
		return CorrectionResponse{}, err
	}

	pending, err := s.repo.HasPending(ctx, actorID, date)
	if err != nil {
		s.logger.Error("request correction pending lookup failed", zap.Error(err))
		return CorrectionResponse{}, err
	}
	if pending {
		return CorrectionResponse{}, correctionerrors.ErrDuplicatePending
	}

	c := &AttendanceCorrection{
		ID:       uuid.New(),
		UserID:   userUUID,
		Date:     date,
		Reason:   req.Reason,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Witness:  witness,
		Status:   StatusPending,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		// Balapan dengan request identik kalah di partial unique index.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return CorrectionResponse{}, correctionerrors.ErrDuplicatePending
		}
		s.logger.Error("request correction persist failed", zap.Error(err))
		return CorrectionResponse{}, err
	}

	s.logger.Info("request correction success",
		zap.String("correction_id", c.ID.String()),
		zap.String("user_id", actorID),
		zap.String("date", dateutil.FormatDay(date)),
	)

	resp := mapToResponse(*c)
	s.notifier.NotifyRole(ctx, user.RoleAdmin, events.EventCorrectionRequested, resp)
	return resp, nil
}

// resolveWitness menyalin nama saksi sebagai snapshot teks bebas; jika
// witness_id diberikan, nama diambil dari user aktif.
func (s *service) resolveWitness(ctx context.Context, req RequestCorrectionRequest) (string, error) {
	if req.WitnessID == "" {
		return req.Witness, nil
	}

	w, err := s.users.FindByID(ctx, req.WitnessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", correctionerrors.ErrWitnessInvalid
		}
		return "", err
	}
	if !w.IsActive {
		return "", correctionerrors.ErrWitnessInvalid
	}
	return w.FullName(), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]CorrectionResponse, error) {
	list, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) GetOwn(ctx context.Context, actorID string) ([]CorrectionResponse, error) {
	list, err := s.repo.FindAllByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) Decide(ctx context.Context, actorID, role, id string, req DecideCorrectionRequest) (CorrectionResponse, error) {
	s.logger.Debug("decide correction",
		zap.String("correction_id", id),
		zap.String("actor_id", actorID),
		zap.String("action", req.Action),
	)

	if role != user.RoleAdmin {
		return CorrectionResponse{}, correctionerrors.ErrAccessDenied
	}
	if req.Action != StatusApproved && req.Action != StatusRejected {
		return CorrectionResponse{}, correctionerrors.ErrInvalidAction
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		s.logger.Error("decide correction begin tx failed", zap.Error(err))
		return CorrectionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CorrectionResponse{}, correctionerrors.ErrCorrectionNotFound
		}
		return CorrectionResponse{}, err
	}
	if c.Status != StatusPending {
		return CorrectionResponse{}, correctionerrors.ErrCorrectionNotPending
	}

	if req.Action == StatusApproved {
		if err := s.applyApproval(ctx, tx, c); err != nil {
			return CorrectionResponse{}, err
		}
	}

	now := time.Now().UTC()
	c.Status = req.Action
	c.DecidedAt = &now
	if req.Reason != "" {
		c.AdminReason = &req.Reason
	}

	if err := qtx.Update(ctx, c); err != nil {
		s.logger.Error("decide correction persist failed", zap.String("correction_id", id), zap.Error(err))
		return CorrectionResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("decide correction commit failed", zap.String("correction_id", id), zap.Error(err))
		return CorrectionResponse{}, err
	}

	s.logger.Info("decide correction success",
		zap.String("correction_id", id),
		zap.String("status", c.Status),
	)

	resp := mapToResponse(*c)
	s.notifier.NotifyUser(ctx, c.UserID.String(), events.EventCorrectionDecided, resp)
	return resp, nil
}

// applyApproval menulis ulang absensi hari itu menjadi PRESENT dan
// membatalkan cuti harian yang sekarang bertabrakan dengannya. Semua
// efek berjalan dalam transaksi pemanggil.
func (s *service) applyApproval(ctx context.Context, tx *sql.Tx, c *AttendanceCorrection) error {
	checkIn := c.CheckIn
	checkOut := c.CheckOut
	if err := s.attendances.WithTx(tx).Upsert(ctx, &attendance.Attendance{
		ID:       uuid.New(),
		UserID:   c.UserID,
		Date:     c.Date,
		Status:   attendance.StatusPresent,
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
	}); err != nil {
		s.logger.Error("correction approval attendance upsert failed", zap.Error(err))
		return err
	}

	qleaves := s.leaves.WithTx(tx)
	covering, err := qleaves.FindSingleDayByUser(ctx, c.UserID.String(), c.Date, []string{leave.StatusPending, leave.StatusApproved})
	if err != nil {
		s.logger.Error("correction approval leave lookup failed", zap.Error(err))
		return err
	}

	for i := range covering {
		l := covering[i]
		if l.Status == leave.StatusApproved && !nonRefundableTypes[l.Type] {
			if err := s.ledger.Apply(ctx, tx, c.UserID.String(), balance.KindLeave, 1, c.ID.String()); err != nil {
				return err
			}
		}

		reason := systemRejectReason
		l.Status = leave.StatusRejected
		l.RejectReason = &reason
		if err := qleaves.Update(ctx, &l); err != nil {
			s.logger.Error("correction approval leave reversal failed",
				zap.String("leave_id", l.ID.String()),
				zap.Error(err),
			)
			return err
		}
	}

	return nil
}

func mapToResponse(c AttendanceCorrection) CorrectionResponse {
	resp := CorrectionResponse{
		ID:          c.ID.String(),
		UserID:      c.UserID.String(),
		Date:        dateutil.FormatDay(c.Date),
		Reason:      c.Reason,
		CheckIn:     c.CheckIn.Format(time.RFC3339),
		CheckOut:    c.CheckOut.Format(time.RFC3339),
		Witness:     c.Witness,
		Status:      c.Status,
		AdminReason: c.AdminReason,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
	if c.User != nil {
		resp.UserName = c.User.FirstName
		if c.User.LastName != "" {
			resp.UserName += " " + c.User.LastName
		}
	}
	if c.DecidedAt != nil {
		v := c.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(list []AttendanceCorrection) []CorrectionResponse {
	resp := make([]CorrectionResponse, len(list))
	for i, c := range list {
		resp[i] = mapToResponse(c)
	}
	return resp
}
