package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/dateutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)
	FindAllByUser(ctx context.Context, userID string, from, to *time.Time) ([]Attendance, error)
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	// Upsert writes the row keyed on (user_id, date), overwriting
	// status and times when the row already exists.
	Upsert(ctx context.Context, a *Attendance) error
	ExistsByUsersOnDate(ctx context.Context, userIDs []uuid.UUID, date time.Time) ([]uuid.UUID, error)
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

func (r *repository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Where("user_id = ? AND date = ?", userID, dateutil.Day(date)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAllByUser(ctx context.Context, userID string, from, to *time.Time) ([]Attendance, error) {
	var list []Attendance
	q := r.conn(ctx).Where("user_id = ?", userID)
	if from != nil {
		q = q.Where("date >= ?", dateutil.Day(*from))
	}
	if to != nil {
		q = q.Where("date <= ?", dateutil.Day(*to))
	}
	err := q.Order("date DESC").Find(&list).Error
	return list, err
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Save(a).Error
}

func (r *repository) Upsert(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "check_in", "check_out", "updated_at",
			}),
		}).
		Create(a).Error
}

// ExistsByUsersOnDate mengembalikan subset userIDs yang sudah punya baris
// absensi pada tanggal tersebut. Dipakai batch oleh job malam.
func (r *repository) ExistsByUsersOnDate(ctx context.Context, userIDs []uuid.UUID, date time.Time) ([]uuid.UUID, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := r.conn(ctx).
		Model(&Attendance{}).
		Where("user_id IN ?", userIDs).
		Where("date = ?", dateutil.Day(date)).
		Pluck("user_id", &ids).Error
	return ids, err
}
