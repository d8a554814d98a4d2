package balance

import (
	"context"
	"database/sql"
	"net/http"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/user"

	"go.uber.org/zap"
)

// Kind selects which of the user's running balances a delta applies to.
type Kind string

const (
	KindLeave   Kind = "LEAVE"
	KindCompOff Kind = "COMP_OFF"
)

var (
	ErrInsufficientBalance = apperror.New(
		apperror.CodeConflict,
		"insufficient balance for this operation",
		http.StatusConflict,
	)
	ErrUnknownBalanceKind = apperror.New(
		apperror.CodeInternalError,
		"unknown balance kind",
		http.StatusInternalServerError,
	)
)

// Ledger is the single entry point for every balance mutation in the
// system. All five call sites (comp-off grant, grant deletion reversal,
// comp-off leave approval spend, correction-approval credit, admin
// adjustment) funnel through Apply so the delta and the record status
// flip that caused it always share one transaction.
//
//go:generate mockgen -source=balance_ledger.go -destination=mock/balance_ledger_mock.go -package=mock
type Ledger interface {
	// Apply adds delta to the user's balance of the given kind inside
	// the supplied transaction. Negative deltas that would overdraw
	// return ErrInsufficientBalance and must abort the caller's tx.
	Apply(ctx context.Context, tx *sql.Tx, userID string, kind Kind, delta float64, causeID string) error
}

type ledger struct {
	users  user.Repository
	logger *zap.Logger
}

func NewLedger(users user.Repository, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("balance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.ledger")
	}
	return &ledger{users: users, logger: l}
}

func (s *ledger) Apply(ctx context.Context, tx *sql.Tx, userID string, kind Kind, delta float64, causeID string) error {
	var column string
	switch kind {
	case KindLeave:
		column = user.BalanceColumnLeave
	case KindCompOff:
		column = user.BalanceColumnCompOff
	default:
		return ErrUnknownBalanceKind
	}

	repo := s.users
	if tx != nil {
		repo = repo.WithTx(tx)
	}

	affected, err := repo.AdjustBalance(ctx, userID, column, delta)
	if err != nil {
		s.logger.Error("balance adjustment failed",
			zap.String("user_id", userID),
			zap.String("kind", string(kind)),
			zap.Float64("delta", delta),
			zap.String("cause_id", causeID),
			zap.Error(err),
		)
		return err
	}
	if affected == 0 {
		s.logger.Warn("balance adjustment rejected",
			zap.String("user_id", userID),
			zap.String("kind", string(kind)),
			zap.Float64("delta", delta),
			zap.String("cause_id", causeID),
		)
		return ErrInsufficientBalance
	}

	s.logger.Info("balance adjusted",
		zap.String("user_id", userID),
		zap.String("kind", string(kind)),
		zap.Float64("delta", delta),
		zap.String("cause_id", causeID),
	)
	return nil
}
