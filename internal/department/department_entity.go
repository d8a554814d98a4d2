package department

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"column:name;type:varchar(120);not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Department) TableName() string {
	return "departments"
}
