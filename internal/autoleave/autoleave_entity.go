package autoleave

import (
	"time"

	"github.com/google/uuid"
)

// AutoLeaveRun adalah jejak audit satu kali eksekusi job malam. Tidak
// pernah dibaca untuk dedup; filter cuti APPROVED yang menutupi tanggal
// sudah membuat job idempoten.
type AutoLeaveRun struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	RunDate        time.Time `gorm:"column:run_date;type:date;not null;index"`
	CandidateCount int       `gorm:"column:candidate_count;not null"`
	EligibleCount  int       `gorm:"column:eligible_count;not null"`
	CreatedCount   int       `gorm:"column:created_count;not null"`
	StartedAt      time.Time `gorm:"column:started_at;type:timestamptz;not null"`
	FinishedAt     time.Time `gorm:"column:finished_at;type:timestamptz;not null"`
}

func (AutoLeaveRun) TableName() string {
	return "auto_leave_runs"
}
