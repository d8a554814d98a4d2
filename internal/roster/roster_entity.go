package roster

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Date      time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_holidays_date"`
	Name      string    `gorm:"column:name;type:varchar(120);not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}

// WeeklyOff menyimpan hari libur mingguan per user: isFixed berarti
// berulang tiap minggu pada OffDay, selain itu berlaku sekali pada
// OffDate.
type WeeklyOff struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	IsFixed   bool       `gorm:"column:is_fixed;not null;default:true"`
	OffDay    string     `gorm:"column:off_day;type:varchar(10)"`
	OffDate   *time.Time `gorm:"column:off_date;type:date"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (WeeklyOff) TableName() string {
	return "weekly_offs"
}
