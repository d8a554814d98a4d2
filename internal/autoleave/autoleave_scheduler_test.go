package autoleave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerNextRun(t *testing.T) {
	s := NewScheduler(nil)

	t.Run("same day when before 18:03 office time", func(t *testing.T) {
		// 06:00 UTC = 11:30 office time.
		now := time.Date(2026, 4, 6, 6, 0, 0, 0, time.UTC)
		next := s.nextRun(now)

		// 18:03 office time = 12:33 UTC.
		assert.Equal(t, time.Date(2026, 4, 6, 12, 33, 0, 0, time.UTC), next)
	})

	t.Run("next day when already past 18:03 office time", func(t *testing.T) {
		// 14:00 UTC = 19:30 office time.
		now := time.Date(2026, 4, 6, 14, 0, 0, 0, time.UTC)
		next := s.nextRun(now)

		assert.Equal(t, time.Date(2026, 4, 7, 12, 33, 0, 0, time.UTC), next)
	})
}
