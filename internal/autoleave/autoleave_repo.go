package autoleave

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	RecordRun(ctx context.Context, run *AutoLeaveRun) error
	ListRuns(ctx context.Context, limit int) ([]AutoLeaveRun, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) RecordRun(ctx context.Context, run *AutoLeaveRun) error {
	return r.conn(ctx).Create(run).Error
}

func (r *repository) ListRuns(ctx context.Context, limit int) ([]AutoLeaveRun, error) {
	if limit <= 0 {
		limit = 30
	}
	var runs []AutoLeaveRun
	err := r.conn(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
