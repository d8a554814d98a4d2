package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	TypePaid    = "PAID"
	TypeUnpaid  = "UNPAID"
	TypeSick    = "SICK"
	TypeCasual  = "CASUAL"
	TypeHalfDay = "HALF_DAY"
	TypeWFH     = "WFH"
	TypeCompOff = "COMP_OFF"
)

// ValidTypes is the closed set of leave types the lifecycle accepts.
var ValidTypes = map[string]bool{
	TypePaid:    true,
	TypeUnpaid:  true,
	TypeSick:    true,
	TypeCasual:  true,
	TypeHalfDay: true,
	TypeWFH:     true,
	TypeCompOff: true,
}

type Leave struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_leaves_user_status;index:idx_leaves_user_dates"`

	Type      string    `gorm:"column:type;type:varchar(20);not null"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null;index:idx_leaves_user_dates"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index:idx_leaves_user_dates"`
	Reason    string    `gorm:"column:reason;type:text"`

	Status       string     `gorm:"column:status;type:varchar(20);not null;default:PENDING;index:idx_leaves_user_status"`
	RejectReason *string    `gorm:"column:reject_reason;type:text"`
	ApproverID   *uuid.UUID `gorm:"column:approver_id;type:uuid"`

	// Per-viewer visibility suppression, not reversal and not deletion.
	IsAdminDeleted    bool `gorm:"column:is_admin_deleted;not null;default:false"`
	IsEmployeeDeleted bool `gorm:"column:is_employee_deleted;not null;default:false"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DecidedAt *time.Time `gorm:"column:decided_at"`

	User *UserRef `gorm:"foreignKey:UserID;references:ID"`
}

func (Leave) TableName() string {
	return "leaves"
}

type UserRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (UserRef) TableName() string {
	return "users"
}
