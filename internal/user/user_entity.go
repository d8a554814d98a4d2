package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const RoleAdmin = "ADMIN"

type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName string    `gorm:"column:first_name;type:varchar(100);not null"`
	LastName  string    `gorm:"column:last_name;type:varchar(100)"`
	Email     string    `gorm:"column:email;type:text;not null;uniqueIndex:uq_users_email"`
	Role      string    `gorm:"column:role;type:varchar(30);not null;default:EMPLOYEE"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`

	// Running totals, mutated only through the balance ledger.
	LeaveBalance   float64 `gorm:"column:leave_balance;type:numeric(6,2);not null;default:0"`
	CompOffBalance float64 `gorm:"column:comp_off_balance;type:numeric(6,2);not null;default:0"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type UserDepartment struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	DepartmentID uuid.UUID `gorm:"column:department_id;type:uuid;primaryKey"`
}

func (UserDepartment) TableName() string {
	return "user_departments"
}

type DepartmentManager struct {
	DepartmentID uuid.UUID `gorm:"column:department_id;type:uuid;primaryKey"`
	ManagerID    uuid.UUID `gorm:"column:manager_id;type:uuid;primaryKey"`
}

func (DepartmentManager) TableName() string {
	return "department_managers"
}
