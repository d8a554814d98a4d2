package compoff

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/dateutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=compoff_repo.go -destination=mock/compoff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *CompOff) error
	FindByID(ctx context.Context, id string) (*CompOff, error)
	FindAll(ctx context.Context) ([]CompOff, error)
	FindAllByUser(ctx context.Context, userID string) ([]CompOff, error)
	Delete(ctx context.Context, id string) error
	// ApprovedGrantUserIDs mengembalikan subset userIDs yang punya grant
	// APPROVED pada tanggal kerja tersebut. Dipakai batch oleh job malam.
	ApprovedGrantUserIDs(ctx context.Context, userIDs []uuid.UUID, workDate time.Time) ([]uuid.UUID, error)
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

func (r *repository) Create(ctx context.Context, c *CompOff) error {
	return r.conn(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*CompOff, error) {
	var c CompOff
	err := r.conn(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindAll(ctx context.Context) ([]CompOff, error) {
	var list []CompOff
	err := r.conn(ctx).Order("work_date DESC").Find(&list).Error
	return list, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]CompOff, error) {
	var list []CompOff
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Order("work_date DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&CompOff{}, "id = ?", id).Error
}

func (r *repository) ApprovedGrantUserIDs(ctx context.Context, userIDs []uuid.UUID, workDate time.Time) ([]uuid.UUID, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := r.conn(ctx).
		Model(&CompOff{}).
		Where("user_id IN ?", userIDs).
		Where("work_date = ?", dateutil.Day(workDate)).
		Where("status = ?", StatusApproved).
		Distinct().
		Pluck("user_id", &ids).Error
	return ids, err
}
