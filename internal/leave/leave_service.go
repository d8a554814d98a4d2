package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrms/internal/balance"
	"go-hrms/internal/events"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/notification"
	"go-hrms/internal/shared/dateutil"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actorID, role string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actorID, role, id string) (LeaveResponse, error)
	ListForManager(ctx context.Context, managerID string) ([]LeaveResponse, error)
	Update(ctx context.Context, actorID, role, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, actorID, role, id string, req DecideLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, actorID, role, id string) error
	Hide(ctx context.Context, actorID, role, id string) error
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
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, users: users, ledger: ledger, notifier: notifier, logger: l}
}

// serializableTx opens the transaction used by every read-then-write
// path. SERIALIZABLE turns two concurrent overlapping requests into one
// winner and one 40001 failure instead of two committed leaves.
func (s *service) serializableTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("actor_id", actorID),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if req.Type == "" || req.StartDate == "" || req.EndDate == "" {
		return LeaveResponse{}, leaveerrors.ErrMissingFields
	}
	if !ValidTypes[req.Type] {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	userUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrAccessDenied
	}

	startDate, err := dateutil.ParseDay(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := dateutil.ParseDay(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if req.Type == TypeHalfDay && !startDate.Equal(endDate) {
		s.logger.Warn("create leave half-day spans multiple dates", zap.String("actor_id", actorID))
		return LeaveResponse{}, leaveerrors.ErrHalfDaySingleDate
	}

	tx, err := s.serializableTx(ctx)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qusers := s.users.WithTx(tx)

	// Comp-off leave spends earned balance; refuse up front when the
	// request already exceeds it. Approval re-checks, balance may move.
	if req.Type == TypeCompOff {
		u, err := qusers.FindByID(ctx, actorID)
		if err != nil {
			s.logger.Error("create leave balance lookup failed", zap.Error(err))
			return LeaveResponse{}, mapRepositoryError(err)
		}
		if u.CompOffBalance < float64(dateutil.DaysInclusive(startDate, endDate)) {
			return LeaveResponse{}, balance.ErrInsufficientBalance
		}
	}

	overlap, err := qtx.HasOverlapping(ctx, actorID, startDate, endDate, []string{StatusPending, StatusApproved}, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("actor_id", actorID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	// First manager by id keeps the default approver deterministic when
	// the user belongs to several departments; nil when unmanaged.
	managers, err := qusers.FindManagersOf(ctx, actorID)
	if err != nil {
		s.logger.Error("create leave approver lookup failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	var approverID *uuid.UUID
	if len(managers) > 0 {
		approverID = &managers[0]
	}

	l := &Leave{
		ID:         uuid.New(),
		UserID:     userUUID,
		Type:       req.Type,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Status:     StatusPending,
		ApproverID: approverID,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", actorID),
		zap.String("type", l.Type),
	)

	resp := mapToResponse(*l)
	s.notifier.NotifyRole(ctx, user.RoleAdmin, events.EventLeaveCreated, resp)
	for _, m := range managers {
		s.notifier.NotifyUser(ctx, m.String(), events.EventLeaveCreated, resp)
	}

	return resp, nil
}

func (s *service) GetAll(ctx context.Context, actorID, role string) ([]LeaveResponse, error) {
	var (
		leaves []Leave
		err    error
	)
	if role == user.RoleAdmin {
		leaves, err = s.repo.FindAll(ctx)
	} else {
		leaves, err = s.repo.FindAllByUser(ctx, actorID)
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, actorID, role, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if role != user.RoleAdmin && l.UserID.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrAccessDenied
	}
	return mapToResponse(*l), nil
}

func (s *service) ListForManager(ctx context.Context, managerID string) ([]LeaveResponse, error) {
	memberIDs, err := s.users.ManagedMemberIDs(ctx, managerID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	leaves, err := s.repo.FindVisibleByUsers(ctx, memberIDs)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Update(ctx context.Context, actorID, role, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("update leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("role", role),
	)

	tx, err := s.serializableTx(ctx)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	isAdmin := role == user.RoleAdmin
	if !isAdmin {
		if l.UserID.String() != actorID {
			return LeaveResponse{}, leaveerrors.ErrAccessDenied
		}
		if l.Status != StatusPending {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
		}
		// Allow-list filter: forbidden fields are dropped, not
		// rejected. Matches the observed behavior of the employee
		// update path.
		req.Status = nil
		req.ApproverID = nil
		req.UserID = nil
		req.RejectReason = nil
	}

	newType := l.Type
	if req.Type != nil {
		if !ValidTypes[*req.Type] {
			return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
		}
		newType = *req.Type
	}
	newStart, newEnd := l.StartDate, l.EndDate
	if req.StartDate != nil {
		if newStart, err = dateutil.ParseDay(*req.StartDate); err != nil {
			return LeaveResponse{}, err
		}
	}
	if req.EndDate != nil {
		if newEnd, err = dateutil.ParseDay(*req.EndDate); err != nil {
			return LeaveResponse{}, err
		}
	}
	if newStart.After(newEnd) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if newType == TypeHalfDay && !newStart.Equal(newEnd) {
		return LeaveResponse{}, leaveerrors.ErrHalfDaySingleDate
	}

	datesChanged := req.StartDate != nil || req.EndDate != nil
	typeChanged := req.Type != nil && *req.Type != l.Type
	if datesChanged || typeChanged {
		// Narrower than create: only APPROVED leaves collide here.
		// Preserved as-is; see the overlap asymmetry note in DESIGN.md.
		overlap, err := qtx.HasOverlapping(ctx, l.UserID.String(), newStart, newEnd, []string{StatusApproved}, &id)
		if err != nil {
			s.logger.Error("update leave overlap check failed", zap.Error(err))
			return LeaveResponse{}, mapRepositoryError(err)
		}
		if overlap {
			return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
		}
	}

	l.Type = newType
	l.StartDate = newStart
	l.EndDate = newEnd
	if req.Reason != nil {
		l.Reason = *req.Reason
	}

	if isAdmin {
		if req.UserID != nil {
			ownerUUID, err := uuid.Parse(*req.UserID)
			if err != nil {
				return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			}
			l.UserID = ownerUUID
		}
		if req.Status != nil {
			switch *req.Status {
			case StatusPending, StatusApproved, StatusRejected:
				l.Status = *req.Status
			default:
				return LeaveResponse{}, leaveerrors.ErrInvalidAction
			}
		}
		if req.ApproverID != nil {
			approverUUID, err := uuid.Parse(*req.ApproverID)
			if err != nil {
				return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			}
			l.ApproverID = &approverUUID
		}
		if req.RejectReason != nil {
			l.RejectReason = req.RejectReason
		}
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) Decide(ctx context.Context, actorID, role, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("action", req.Action),
	)

	if req.Action != StatusApproved && req.Action != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidAction
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrAccessDenied
	}

	tx, err := s.serializableTx(ctx)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyProcessed
	}

	// Self-approval is forbidden for everyone, admins included.
	if l.UserID.String() == actorID {
		s.logger.Warn("decide leave self-approval blocked",
			zap.String("leave_id", id),
			zap.String("actor_id", actorID),
		)
		return LeaveResponse{}, leaveerrors.ErrSelfApproval
	}

	if role != user.RoleAdmin {
		manages, err := s.users.WithTx(tx).IsManagerOf(ctx, actorID, l.UserID.String())
		if err != nil {
			s.logger.Error("decide leave manager check failed", zap.Error(err))
			return LeaveResponse{}, mapRepositoryError(err)
		}
		if !manages {
			return LeaveResponse{}, leaveerrors.ErrNotAuthorizedApprover
		}
	}

	if req.Action == StatusApproved {
		overlap, err := qtx.HasOverlapping(ctx, l.UserID.String(), l.StartDate, l.EndDate, []string{StatusApproved}, &id)
		if err != nil {
			s.logger.Error("decide leave overlap check failed", zap.Error(err))
			return LeaveResponse{}, mapRepositoryError(err)
		}
		if overlap {
			return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
		}

		// Approving a comp-off leave spends the earned balance in the
		// same transaction as the status flip.
		if l.Type == TypeCompOff {
			days := dateutil.DaysInclusive(l.StartDate, l.EndDate)
			if err := s.ledger.Apply(ctx, tx, l.UserID.String(), balance.KindCompOff, -float64(days), l.ID.String()); err != nil {
				return LeaveResponse{}, err
			}
		}
	}

	now := time.Now().UTC()
	l.Status = req.Action
	l.ApproverID = &actorUUID
	l.DecidedAt = &now
	if req.Action == StatusRejected {
		reason := req.Reason
		l.RejectReason = &reason
	} else {
		l.RejectReason = nil
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
		zap.String("approver_id", actorID),
	)

	resp := mapToResponse(*l)
	s.notifier.NotifyUser(ctx, l.UserID.String(), events.EventLeaveDecided, resp)
	return resp, nil
}

func (s *service) Delete(ctx context.Context, actorID, role, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if role != user.RoleAdmin {
		if l.UserID.String() != actorID {
			return leaveerrors.ErrAccessDenied
		}
		if l.Status != StatusPending {
			return leaveerrors.ErrLeaveNotPending
		}
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("delete leave success", zap.String("leave_id", id), zap.String("actor_id", actorID))
	return nil
}

// Hide suppresses a leave from the requesting party's view without
// touching its status or any balance.
func (s *service) Hide(ctx context.Context, actorID, role, id string) error {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if role == user.RoleAdmin {
		l.IsAdminDeleted = true
	} else {
		if l.UserID.String() != actorID {
			return leaveerrors.ErrAccessDenied
		}
		l.IsEmployeeDeleted = true
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("hide leave success", zap.String("leave_id", id), zap.String("role", role))
	return nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:        l.ID.String(),
		UserID:    l.UserID.String(),
		Type:      l.Type,
		StartDate: dateutil.FormatDay(l.StartDate),
		EndDate:   dateutil.FormatDay(l.EndDate),
		TotalDays: dateutil.DaysInclusive(l.StartDate, l.EndDate),
		Reason:    l.Reason,
		Status:    l.Status,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
	if l.User != nil {
		resp.UserName = l.User.FirstName
		if l.User.LastName != "" {
			resp.UserName += " " + l.User.LastName
		}
	}
	if l.ApproverID != nil {
		v := l.ApproverID.String()
		resp.ApproverID = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	resp.RejectReason = l.RejectReason
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return mapPgError(err)
}
