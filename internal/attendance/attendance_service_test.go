package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrms/internal/attendance"
	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	findByUserAndDateFn   func(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error)
	findAllByUserFn       func(ctx context.Context, userID string, from, to *time.Time) ([]attendance.Attendance, error)
	createFn              func(ctx context.Context, a *attendance.Attendance) error
	updateFn              func(ctx context.Context, a *attendance.Attendance) error
	upsertFn              func(ctx context.Context, a *attendance.Attendance) error
	existsByUsersOnDateFn func(ctx context.Context, userIDs []uuid.UUID, date time.Time) ([]uuid.UUID, error)
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeAttendanceRepository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	if f.findByUserAndDateFn != nil {
		return f.findByUserAndDateFn(ctx, userID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindAllByUser(ctx context.Context, userID string, from, to *time.Time) ([]attendance.Attendance, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID, from, to)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) Upsert(ctx context.Context, a *attendance.Attendance) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) ExistsByUsersOnDate(ctx context.Context, userIDs []uuid.UUID, date time.Time) ([]uuid.UUID, error) {
	if f.existsByUsersOnDateFn != nil {
		return f.existsByUsersOnDateFn(ctx, userIDs, date)
	}
	return nil, nil
}

type fakeUserRepository struct {
	isManagerOfFn func(ctx context.Context, managerID, userID string) (bool, error)
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository { return f }
func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return &user.User{ID: uuid.MustParse(id), IsActive: true}, nil
}
func (f *fakeUserRepository) FindManagersOf(ctx context.Context, userID string) ([]uuid.UUID, error) {
	return nil, nil
}
func (f *fakeUserRepository) IsManagerOf(ctx context.Context, managerID, userID string) (bool, error) {
	if f.isManagerOfFn != nil {
		return f.isManagerOfFn(ctx, managerID, userID)
	}
	return false, nil
}
func (f *fakeUserRepository) ManagedMemberIDs(ctx context.Context, managerID string) ([]uuid.UUID, error) {
	return nil, nil
}
func (f *fakeUserRepository) ActiveNonAdminIDs(ctx context.Context) ([]uuid.UUID, error) {
	return nil, nil
}
func (f *fakeUserRepository) ActiveIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error) {
	return nil, nil
}
func (f *fakeUserRepository) AdjustBalance(ctx context.Context, userID, column string, delta float64) (int64, error) {
	return 1, nil
}

func TestAttendanceService_ClockIn(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("before cutoff is present", func(t *testing.T) {
		repo := &fakeAttendanceRepository{}
		var created *attendance.Attendance
		repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			created = a
			return nil
		}

		// 03:00 UTC = 08:30 office time.
		now := time.Date(2026, 4, 6, 3, 0, 0, 0, time.UTC)
		svc := attendance.NewServiceWithClock(repo, &fakeUserRepository{}, func() time.Time { return now })

		resp, err := svc.ClockIn(ctx, actorID)
		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.Equal(t, "2026-04-06", resp.Date)
		assert.NotNil(t, created.CheckIn)
	})

	t.Run("after cutoff is late", func(t *testing.T) {
		repo := &fakeAttendanceRepository{}

		// 05:00 UTC = 10:30 office time.
		now := time.Date(2026, 4, 6, 5, 0, 0, 0, time.UTC)
		svc := attendance.NewServiceWithClock(repo, &fakeUserRepository{}, func() time.Time { return now })

		resp, err := svc.ClockIn(ctx, actorID)
		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusLate, resp.Status)
	})

	t.Run("double clock in rejected", func(t *testing.T) {
		repo := &fakeAttendanceRepository{
			findByUserAndDateFn: func(ctx context.Context, uid string, date time.Time) (*attendance.Attendance, error) {
				return &attendance.Attendance{ID: uuid.New()}, nil
			},
		}
		svc := attendance.NewService(repo, &fakeUserRepository{})

		_, err := svc.ClockIn(ctx, actorID)
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
	})

	t.Run("late evening clock in lands on office date", func(t *testing.T) {
		repo := &fakeAttendanceRepository{}

		// 20:00 UTC is already 01:30 next day in office time.
		now := time.Date(2026, 4, 6, 20, 0, 0, 0, time.UTC)
		svc := attendance.NewServiceWithClock(repo, &fakeUserRepository{}, func() time.Time { return now })

		resp, err := svc.ClockIn(ctx, actorID)
		assert.NoError(t, err)
		assert.Equal(t, "2026-04-07", resp.Date)
	})
}

func TestAttendanceService_ClockOut(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("stamps open row", func(t *testing.T) {
		checkIn := time.Date(2026, 4, 6, 3, 30, 0, 0, time.UTC)
		repo := &fakeAttendanceRepository{
			findByUserAndDateFn: func(ctx context.Context, uid string, date time.Time) (*attendance.Attendance, error) {
				return &attendance.Attendance{
					ID:      uuid.New(),
					UserID:  uuid.MustParse(actorID),
					Date:    time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC),
					Status:  attendance.StatusPresent,
					CheckIn: &checkIn,
				}, nil
			},
		}
		var saved *attendance.Attendance
		repo.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			saved = a
			return nil
		}

		now := time.Date(2026, 4, 6, 12, 0, 0, 0, time.UTC)
		svc := attendance.NewServiceWithClock(repo, &fakeUserRepository{}, func() time.Time { return now })

		resp, err := svc.ClockOut(ctx, actorID)
		assert.NoError(t, err)
		assert.NotNil(t, saved.CheckOut)
		assert.Equal(t, now, *saved.CheckOut)
		assert.NotNil(t, resp.CheckOut)
	})

	t.Run("without clock in rejected", func(t *testing.T) {
		svc := attendance.NewService(&fakeAttendanceRepository{}, &fakeUserRepository{})

		_, err := svc.ClockOut(ctx, actorID)
		assert.ErrorIs(t, err, attendanceerrors.ErrNotClockedIn)
	})

	t.Run("double clock out rejected", func(t *testing.T) {
		out := time.Now().UTC()
		repo := &fakeAttendanceRepository{
			findByUserAndDateFn: func(ctx context.Context, uid string, date time.Time) (*attendance.Attendance, error) {
				return &attendance.Attendance{ID: uuid.New(), CheckOut: &out}, nil
			},
		}
		svc := attendance.NewService(repo, &fakeUserRepository{})

		_, err := svc.ClockOut(ctx, actorID)
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedOut)
	})
}

func TestAttendanceService_ListForUser(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	targetID := uuid.New().String()

	t.Run("manager of target allowed", func(t *testing.T) {
		users := &fakeUserRepository{
			isManagerOfFn: func(ctx context.Context, mid, uid string) (bool, error) {
				assert.Equal(t, actorID, mid)
				assert.Equal(t, targetID, uid)
				return true, nil
			},
		}
		repo := &fakeAttendanceRepository{
			findAllByUserFn: func(ctx context.Context, uid string, from, to *time.Time) ([]attendance.Attendance, error) {
				assert.Equal(t, targetID, uid)
				return []attendance.Attendance{}, nil
			},
		}
		svc := attendance.NewService(repo, users)

		_, err := svc.ListForUser(ctx, actorID, "EMPLOYEE", targetID, attendance.ListAttendanceQuery{})
		assert.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		svc := attendance.NewService(&fakeAttendanceRepository{}, &fakeUserRepository{})

		_, err := svc.ListForUser(ctx, actorID, "EMPLOYEE", targetID, attendance.ListAttendanceQuery{})
		assert.ErrorIs(t, err, attendanceerrors.ErrAccessDenied)
	})

	t.Run("date filters parsed in both formats", func(t *testing.T) {
		var gotFrom, gotTo *time.Time
		repo := &fakeAttendanceRepository{
			findAllByUserFn: func(ctx context.Context, uid string, from, to *time.Time) ([]attendance.Attendance, error) {
				gotFrom, gotTo = from, to
				return nil, nil
			},
		}
		svc := attendance.NewService(repo, &fakeUserRepository{})

		_, err := svc.ListOwn(ctx, actorID, attendance.ListAttendanceQuery{From: "01-04-2026", To: "2026-04-30"})
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *gotFrom)
		assert.Equal(t, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC), *gotTo)
	})
}
