package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/dateutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	CreateBatch(ctx context.Context, ls []Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindAll(ctx context.Context) ([]Leave, error)
	FindAllByUser(ctx context.Context, userID string) ([]Leave, error)
	FindVisibleByUsers(ctx context.Context, userIDs []uuid.UUID) ([]Leave, error)
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, id string) error
	HasOverlapping(ctx context.Context, userID string, startDate, endDate time.Time, statuses []string, excludeID *string) (bool, error)
	FindSingleDayByUser(ctx context.Context, userID string, date time.Time, statuses []string) ([]Leave, error)
	CoveringApprovedUserIDs(ctx context.Context, userIDs []uuid.UUID, date time.Time) ([]uuid.UUID, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) CreateBatch(ctx context.Context, ls []Leave) error {
	if len(ls) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&ls).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Preload("User").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Preload("User").
		Where("is_admin_deleted = FALSE").
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Where("is_employee_deleted = FALSE").
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

// FindVisibleByUsers is the manager view: leaves of the given members,
// hidden for neither party.
func (r *repository) FindVisibleByUsers(ctx context.Context, userIDs []uuid.UUID) ([]Leave, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var leaves []Leave
	err := r.conn(ctx).
		Preload("User").
		Where("user_id IN ?", userIDs).
		Where("is_admin_deleted = FALSE").
		Where("is_employee_deleted = FALSE").
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Leave{}, "id = ?", id).Error
}

// HasOverlapping reports whether the user already has a leave in one of
// the given statuses whose inclusive date range touches
// [startDate, endDate]. Callers pick the status set: create checks
// PENDING+APPROVED, update and approve check APPROVED only with the
// record's own id excluded.
func (r *repository) HasOverlapping(ctx context.Context, userID string, startDate, endDate time.Time, statuses []string, excludeID *string) (bool, error) {
	db := r.conn(ctx).
		Model(&Leave{}).
		Where("user_id = ?", userID).
		Where("status IN ?", statuses).
		Where("is_admin_deleted = FALSE").
		Where("is_employee_deleted = FALSE").
		Where("start_date <= ? AND end_date >= ?", dateutil.Day(endDate), dateutil.Day(startDate))

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

// FindSingleDayByUser returns the user's leaves whose range is exactly
// the given single day, in any of the given statuses, not hidden.
func (r *repository) FindSingleDayByUser(ctx context.Context, userID string, date time.Time, statuses []string) ([]Leave, error) {
	day := dateutil.Day(date)
	var leaves []Leave
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Where("status IN ?", statuses).
		Where("start_date = ? AND end_date = ?", day, day).
		Where("is_admin_deleted = FALSE").
		Where("is_employee_deleted = FALSE").
		Find(&leaves).Error
	return leaves, err
}

// CoveringApprovedUserIDs returns, from the candidate set, the users
// that already have an APPROVED leave covering the date. This filter is
// the nightly job's sole duplicate-prevention mechanism.
func (r *repository) CoveringApprovedUserIDs(ctx context.Context, userIDs []uuid.UUID, date time.Time) ([]uuid.UUID, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	day := dateutil.Day(date)
	var ids []uuid.UUID
	err := r.conn(ctx).
		Model(&Leave{}).
		Select("DISTINCT user_id").
		Where("user_id IN ?", userIDs).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Where("is_admin_deleted = FALSE").
		Where("is_employee_deleted = FALSE").
		Pluck("user_id", &ids).Error
	return ids, err
}
