package correction

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/dateutil"

	"gorm.io/gorm"
)

//go:generate mockgen -source=correction_repo.go -destination=mock/correction_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *AttendanceCorrection) error
	FindByID(ctx context.Context, id string) (*AttendanceCorrection, error)
	FindAll(ctx context.Context, status string) ([]AttendanceCorrection, error)
	FindAllByUser(ctx context.Context, userID string) ([]AttendanceCorrection, error)
	HasPending(ctx context.Context, userID string, date time.Time) (bool, error)
	Update(ctx context.Context, c *AttendanceCorrection) error
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

func (r *repository) Create(ctx context.Context, c *AttendanceCorrection) error {
	return r.conn(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*AttendanceCorrection, error) {
	var c AttendanceCorrection
	err := r.conn(ctx).Preload("User").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindAll(ctx context.Context, status string) ([]AttendanceCorrection, error) {
	var list []AttendanceCorrection
	q := r.conn(ctx).Preload("User")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]AttendanceCorrection, error) {
	var list []AttendanceCorrection
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) HasPending(ctx context.Context, userID string, date time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&AttendanceCorrection{}).
		Where("user_id = ? AND date = ? AND status = ?", userID, dateutil.Day(date), StatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, c *AttendanceCorrection) error {
	return r.conn(ctx).Save(c).Error
}
