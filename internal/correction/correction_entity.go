package correction

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Satu baris PENDING per (user_id, date) dijaga oleh partial unique
// index uq_corrections_pending di migrasi.
type AttendanceCorrection struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_corrections_user_date"`
	Date        time.Time  `gorm:"column:date;type:date;not null;index:idx_corrections_user_date"`
	Reason      string     `gorm:"column:reason;type:text;not null"`
	CheckIn     time.Time  `gorm:"column:check_in;type:timestamptz;not null"`
	CheckOut    time.Time  `gorm:"column:check_out;type:timestamptz;not null"`
	Witness     string     `gorm:"column:witness;type:varchar(200);not null"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:PENDING"`
	AdminReason *string    `gorm:"column:admin_reason;type:text"`
	DecidedAt   *time.Time `gorm:"column:decided_at;type:timestamptz"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	User        *UserRef   `gorm:"foreignKey:UserID;references:ID"`
}

func (AttendanceCorrection) TableName() string {
	return "attendance_corrections"
}

type UserRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (UserRef) TableName() string {
	return "users"
}
