package department

import (
	"context"
	"database/sql"

	"go-hrms/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id string) (*Department, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, deptID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, deptID, userID uuid.UUID) (int64, error)
	AddManager(ctx context.Context, deptID, managerID uuid.UUID) error
	RemoveManager(ctx context.Context, deptID, managerID uuid.UUID) (int64, error)
	MemberIDs(ctx context.Context, deptID string) ([]uuid.UUID, error)
	ManagerIDs(ctx context.Context, deptID string) ([]uuid.UUID, error)
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

// conn mengikat query ke transaksi aktif bila ada.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.conn(ctx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.conn(ctx).Order("name ASC").Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	var dept Department
	err := r.conn(ctx).First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&Department{}, "id = ?", id).Error
}

func (r *repository) AddMember(ctx context.Context, deptID, userID uuid.UUID) error {
	link := user.UserDepartment{UserID: userID, DepartmentID: deptID}
	return r.conn(ctx).Create(&link).Error
}

func (r *repository) RemoveMember(ctx context.Context, deptID, userID uuid.UUID) (int64, error) {
	res := r.conn(ctx).
		Where("department_id = ? AND user_id = ?", deptID, userID).
		Delete(&user.UserDepartment{})
	return res.RowsAffected, res.Error
}

func (r *repository) AddManager(ctx context.Context, deptID, managerID uuid.UUID) error {
	link := user.DepartmentManager{DepartmentID: deptID, ManagerID: managerID}
	return r.conn(ctx).Create(&link).Error
}

func (r *repository) RemoveManager(ctx context.Context, deptID, managerID uuid.UUID) (int64, error) {
	res := r.conn(ctx).
		Where("department_id = ? AND manager_id = ?", deptID, managerID).
		Delete(&user.DepartmentManager{})
	return res.RowsAffected, res.Error
}

func (r *repository) MemberIDs(ctx context.Context, deptID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(ctx).
		Model(&user.UserDepartment{}).
		Where("department_id = ?", deptID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *repository) ManagerIDs(ctx context.Context, deptID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(ctx).
		Model(&user.DepartmentManager{}).
		Where("department_id = ?", deptID).
		Order("manager_id ASC").
		Pluck("manager_id", &ids).Error
	return ids, err
}
