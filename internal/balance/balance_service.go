package balance

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

type AdjustBalanceRequest struct {
	Kind  string  `json:"kind" binding:"required,oneof=LEAVE COMP_OFF"`
	Delta float64 `json:"delta" binding:"required"`
	Note  string  `json:"note"`
}

// AdminService membungkus koreksi saldo manual oleh admin agar tetap
// lewat ledger, bukan update kolom langsung.
type AdminService interface {
	Adjust(ctx context.Context, actorID, userID string, req AdjustBalanceRequest) error
}

type adminService struct {
	db     *sql.DB
	ledger Ledger
	logger *zap.Logger
}

func NewAdminService(db *sql.DB, ledger Ledger, logger ...*zap.Logger) AdminService {
	l := zap.L().Named("balance.admin")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.admin")
	}
	return &adminService{db: db, ledger: ledger, logger: l}
}

func (s *adminService) Adjust(ctx context.Context, actorID, userID string, req AdjustBalanceRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.ledger.Apply(ctx, tx, userID, Kind(req.Kind), req.Delta, "admin:"+actorID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("manual balance adjustment",
		zap.String("user_id", userID),
		zap.String("actor_id", actorID),
		zap.String("kind", req.Kind),
		zap.Float64("delta", req.Delta),
		zap.String("note", req.Note),
	)
	return nil
}
