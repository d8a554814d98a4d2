package roster

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrms/internal/shared/dateutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=roster_repo.go -destination=mock/roster_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateHoliday(ctx context.Context, h *Holiday) error
	ListHolidays(ctx context.Context, year int) ([]Holiday, error)
	DeleteHoliday(ctx context.Context, id string) error
	// HolidayOn mengembalikan nil jika tanggal bukan hari libur.
	HolidayOn(ctx context.Context, date time.Time) (*Holiday, error)
	CreateWeeklyOff(ctx context.Context, w *WeeklyOff) error
	DeleteWeeklyOff(ctx context.Context, id string) error
	ListWeeklyOffsByUser(ctx context.Context, userID string) ([]WeeklyOff, error)
	// WeeklyOffUserIDs mengembalikan subset userIDs yang libur pada
	// tanggal tersebut, baik karena off day tetap maupun off date sekali
	// jalan. Dipakai batch oleh job malam.
	WeeklyOffUserIDs(ctx context.Context, userIDs []uuid.UUID, date time.Time) ([]uuid.UUID, error)
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

func (r *repository) CreateHoliday(ctx context.Context, h *Holiday) error {
	return r.conn(ctx).Create(h).Error
}

func (r *repository) ListHolidays(ctx context.Context, year int) ([]Holiday, error) {
	var list []Holiday
	q := r.conn(ctx)
	if year > 0 {
		from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		q = q.Where("date >= ? AND date < ?", from, from.AddDate(1, 0, 0))
	}
	err := q.Order("date ASC").Find(&list).Error
	return list, err
}

func (r *repository) DeleteHoliday(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Holiday{}, "id = ?", id).Error
}

func (r *repository) HolidayOn(ctx context.Context, date time.Time) (*Holiday, error) {
	var h Holiday
	err := r.conn(ctx).First(&h, "date = ?", dateutil.Day(date)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (r *repository) CreateWeeklyOff(ctx context.Context, w *WeeklyOff) error {
	return r.conn(ctx).Create(w).Error
}

func (r *repository) DeleteWeeklyOff(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&WeeklyOff{}, "id = ?", id).Error
}

func (r *repository) ListWeeklyOffsByUser(ctx context.Context, userID string) ([]WeeklyOff, error) {
	var list []WeeklyOff
	err := r.conn(ctx).Where("user_id = ?", userID).Find(&list).Error
	return list, err
}

func (r *repository) WeeklyOffUserIDs(ctx context.Context, userIDs []uuid.UUID, date time.Time) ([]uuid.UUID, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	day := dateutil.Day(date)
	weekday := dateutil.WeekdayName(date)

	var ids []uuid.UUID
	err := r.conn(ctx).
		Model(&WeeklyOff{}).
		Where("user_id IN ?", userIDs).
		Where("(is_fixed = TRUE AND off_day = ?) OR (is_fixed = FALSE AND off_date = ?)", weekday, day).
		Distinct().
		Pluck("user_id", &ids).Error
	return ids, err
}
