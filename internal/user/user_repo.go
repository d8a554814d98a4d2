package user

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByID(ctx context.Context, id string) (*User, error)
	FindManagersOf(ctx context.Context, userID string) ([]uuid.UUID, error)
	IsManagerOf(ctx context.Context, managerID, userID string) (bool, error)
	ManagedMemberIDs(ctx context.Context, managerID string) ([]uuid.UUID, error)
	ActiveNonAdminIDs(ctx context.Context) ([]uuid.UUID, error)
	ActiveIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error)
	AdjustBalance(ctx context.Context, userID, column string, delta float64) (int64, error)
}

const (
	BalanceColumnLeave   = "leave_balance"
	BalanceColumnCompOff = "comp_off_balance"
)

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

// conn binds queries to the active transaction when one is present, so
// balance writes commit or roll back together with their status flips.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.conn(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

// FindManagersOf resolves the managers of every department the user
// belongs to, ordered by manager id so the first entry is deterministic.
func (r *repository) FindManagersOf(ctx context.Context, userID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(ctx).
		Table("department_managers AS dm").
		Select("DISTINCT dm.manager_id").
		Joins("JOIN user_departments ud ON ud.department_id = dm.department_id").
		Joins("JOIN users u ON u.id = dm.manager_id").
		Where("ud.user_id = ?", userID).
		Where("u.is_active = TRUE").
		Order("dm.manager_id ASC").
		Pluck("dm.manager_id", &ids).Error
	return ids, err
}

func (r *repository) IsManagerOf(ctx context.Context, managerID, userID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("department_managers AS dm").
		Joins("JOIN user_departments ud ON ud.department_id = dm.department_id").
		Where("dm.manager_id = ?", managerID).
		Where("ud.user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ManagedMemberIDs(ctx context.Context, managerID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(ctx).
		Table("user_departments AS ud").
		Select("DISTINCT ud.user_id").
		Joins("JOIN department_managers dm ON dm.department_id = ud.department_id").
		Joins("JOIN users u ON u.id = ud.user_id").
		Where("dm.manager_id = ?", managerID).
		Where("u.is_active = TRUE").
		Pluck("ud.user_id", &ids).Error
	return ids, err
}

func (r *repository) ActiveNonAdminIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(ctx).
		Model(&User{}).
		Where("is_active = TRUE").
		Where("role <> ?", RoleAdmin).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) ActiveIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(ctx).
		Model(&User{}).
		Where("is_active = TRUE").
		Where("role = ?", role).
		Pluck("id", &ids).Error
	return ids, err
}

// AdjustBalance applies a delta to one of the balance columns. The
// guard keeps the column non-negative; zero rows affected means the
// spend would overdraw and the caller must treat it as a conflict.
func (r *repository) AdjustBalance(ctx context.Context, userID, column string, delta float64) (int64, error) {
	if column != BalanceColumnLeave && column != BalanceColumnCompOff {
		return 0, gorm.ErrInvalidField
	}

	res := r.conn(ctx).Exec(
		"UPDATE users SET "+column+" = "+column+" + ?, updated_at = NOW() WHERE id = ? AND "+column+" + ? >= 0",
		delta, userID, delta,
	)
	return res.RowsAffected, res.Error
}
