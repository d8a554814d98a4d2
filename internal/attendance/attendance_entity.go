package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusWFH     = "WFH"
	StatusHalfDay = "HALF_DAY"
	StatusCompOff = "COMP_OFF"
)

type Attendance struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_attendance_user_date"`
	Date      time.Time  `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_user_date"`
	Status    string     `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	CheckIn   *time.Time `gorm:"column:check_in;type:timestamptz"`
	CheckOut  *time.Time `gorm:"column:check_out;type:timestamptz"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
