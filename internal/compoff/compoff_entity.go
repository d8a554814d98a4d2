package compoff

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusApproved = "APPROVED"
	StatusUsed     = "USED"
)

type CompOff struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_comp_offs_user_date"`
	WorkDate  time.Time `gorm:"column:work_date;type:date;not null;index:idx_comp_offs_user_date"`
	Duration  float64   `gorm:"column:duration;type:numeric(3,1);not null;default:1"`
	Status    string    `gorm:"column:status;type:varchar(20);not null;default:APPROVED"`
	Note      string    `gorm:"column:note;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (CompOff) TableName() string {
	return "comp_offs"
}
