package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/balance"
	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"
	notificationmock "go-hrms/internal/notification/mock"
	"go-hrms/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeLeaveRepository struct {
	withTxFn                  func(tx *sql.Tx) leave.Repository
	createFn                  func(ctx context.Context, l *leave.Leave) error
	createBatchFn             func(ctx context.Context, ls []leave.Leave) error
	findByIDFn                func(ctx context.Context, id string) (*leave.Leave, error)
	findAllFn                 func(ctx context.Context) ([]leave.Leave, error)
	findAllByUserFn           func(ctx context.Context, userID string) ([]leave.Leave, error)
	findVisibleByUsersFn      func(ctx context.Context, userIDs []uuid.UUID) ([]leave.Leave, error)
	updateFn                  func(ctx context.Context, l *leave.Leave) error
	deleteFn                  func(ctx context.Context, id string) error
	hasOverlappingFn          func(ctx context.Context, userID string, startDate, endDate time.Time, statuses []string, excludeID *string) (bool, error)
	findSingleDayByUserFn     func(ctx context.Context, userID string, date time.Time, statuses []string) ([]leave.Leave, error)
	coveringApprovedUserIDsFn func(ctx context.Context, userIDs []uuid.UUID, date time.Time) ([]uuid.UUID, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) CreateBatch(ctx context.Context, ls []leave.Leave) error {
	if f.createBatchFn != nil {
		return f.createBatchFn(ctx, ls)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.Leave, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAllByUser(ctx context.Context, userID string) ([]leave.Leave, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindVisibleByUsers(ctx context.Context, userIDs []uuid.UUID) ([]leave.Leave, error) {
	if f.findVisibleByUsersFn != nil {
		return f.findVisibleByUsersFn(ctx, userIDs)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeLeaveRepository) HasOverlapping(ctx context.Context, userID string, startDate, endDate time.Time, statuses []string, excludeID *string) (bool, error) {
	if f.hasOverlappingFn != nil {
		return f.hasOverlappingFn(ctx, userID, startDate, endDate, statuses, excludeID)
	}
	return false, nil
}

func (f *fakeLeaveRepository) FindSingleDayByUser(ctx context.Context, userID string, date time.Time, statuses []string) ([]leave.Leave, error) {
	if f.findSingleDayByUserFn != nil {
		return f.findSingleDayByUserFn(ctx, userID, date, statuses)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) CoveringApprovedUserIDs(ctx context.Context, userIDs []uuid.UUID, date time.Time) ([]uuid.UUID, error) {
	if f.coveringApprovedUserIDsFn != nil {
		return f.coveringApprovedUserIDsFn(ctx, userIDs, date)
	}
	return nil, nil
}

type fakeUserRepository struct {
	withTxFn            func(tx *sql.Tx) user.Repository
	findByIDFn          func(ctx context.Context, id string) (*user.User, error)
	findManagersOfFn    func(ctx context.Context, userID string) ([]uuid.UUID, error)
	isManagerOfFn       func(ctx context.Context, managerID, userID string) (bool, error)
	managedMemberIDsFn  func(ctx context.Context, managerID string) ([]uuid.UUID, error)
	activeNonAdminIDsFn func(ctx context.Context) ([]uuid.UUID, error)
	activeIDsByRoleFn   func(ctx context.Context, role string) ([]uuid.UUID, error)
	adjustBalanceFn     func(ctx context.Context, userID, column string, delta float64) (int64, error)
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &user.User{ID: uuid.MustParse(id), IsActive: true}, nil
}

func (f *fakeUserRepository) FindManagersOf(ctx context.Context, userID string) ([]uuid.UUID, error) {
	if f.findManagersOfFn != nil {
		return f.findManagersOfFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeUserRepository) IsManagerOf(ctx context.Context, managerID, userID string) (bool, error) {
	if f.isManagerOfFn != nil {
		return f.isManagerOfFn(ctx, managerID, userID)
	}
	return false, nil
}

func (f *fakeUserRepository) ManagedMemberIDs(ctx context.Context, managerID string) ([]uuid.UUID, error) {
	if f.managedMemberIDsFn != nil {
		return f.managedMemberIDsFn(ctx, managerID)
	}
	return nil, nil
}

func (f *fakeUserRepository) ActiveNonAdminIDs(ctx context.Context) ([]uuid.UUID, error) {
	if f.activeNonAdminIDsFn != nil {
		return f.activeNonAdminIDsFn(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepository) ActiveIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error) {
	if f.activeIDsByRoleFn != nil {
		return f.activeIDsByRoleFn(ctx, role)
	}
	return nil, nil
}

func (f *fakeUserRepository) AdjustBalance(ctx context.Context, userID, column string, delta float64) (int64, error) {
	if f.adjustBalanceFn != nil {
		return f.adjustBalanceFn(ctx, userID, column, delta)
	}
	return 1, nil
}

type fakeLedger struct {
	applyFn func(ctx context.Context, tx *sql.Tx, userID string, kind balance.Kind, delta float64, causeID string) error
}

func (f *fakeLedger) Apply(ctx context.Context, tx *sql.Tx, userID string, kind balance.Kind, delta float64, causeID string) error {
	if f.applyFn != nil {
		return f.applyFn(ctx, tx, userID, kind, delta, causeID)
	}
	return nil
}

type leaveServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  leave.Service
	repo     *fakeLeaveRepository
	users    *fakeUserRepository
	ledger   *fakeLedger
	notifier *notificationmock.MockGateway
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	repo := &fakeLeaveRepository{}
	users := &fakeUserRepository{}
	ledger := &fakeLedger{}
	notifier := notificationmock.NewMockGateway(ctrl)
	svc := leave.NewService(db, repo, users, ledger, notifier)

	return &leaveServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		users:    users,
		ledger:   ledger,
		notifier: notifier,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	managerID := uuid.New()

	t.Run("success sets pending status and default approver", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		var checkedStatuses []string
		deps.repo.hasOverlappingFn = func(ctx context.Context, uid string, start, end time.Time, statuses []string, excludeID *string) (bool, error) {
			assert.Equal(t, actorID, uid)
			assert.Nil(t, excludeID)
			checkedStatuses = statuses
			return false, nil
		}
		deps.users.findManagersOfFn = func(ctx context.Context, uid string) ([]uuid.UUID, error) {
			return []uuid.UUID{managerID}, nil
		}

		var created *leave.Leave
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			created = l
			return nil
		}

		deps.notifier.EXPECT().NotifyRole(gomock.Any(), user.RoleAdmin, "leave.created", gomock.Any())
		deps.notifier.EXPECT().NotifyUser(gomock.Any(), managerID.String(), "leave.created", gomock.Any())

		resp, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			Type:      leave.TypePaid,
			StartDate: "2026-03-02",
			EndDate:   "2026-03-04",
			Reason:    "Family event",
		})
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.TotalDays)

		// New requests contend with both open and granted leave.
		assert.ElementsMatch(t, []string{leave.StatusPending, leave.StatusApproved}, checkedStatuses)
		assert.NotNil(t, created.ApproverID)
		assert.Equal(t, managerID, *created.ApproverID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("accepts day-first date format", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		var created *leave.Leave
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			created = l
			return nil
		}
		deps.notifier.EXPECT().NotifyRole(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			Type:      leave.TypeSick,
			StartDate: "15-04-2026",
			EndDate:   "2026-04-16",
		})
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), created.StartDate)
	})

	t.Run("overlap rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.hasOverlappingFn = func(ctx context.Context, uid string, start, end time.Time, statuses []string, excludeID *string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			Type:      leave.TypePaid,
			StartDate: "2026-03-02",
			EndDate:   "2026-03-04",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})

	t.Run("half day must be single date", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			Type:      leave.TypeHalfDay,
			StartDate: "2026-03-02",
			EndDate:   "2026-03-03",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrHalfDaySingleDate)
	})

	t.Run("start after end rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			Type:      leave.TypePaid,
			StartDate: "2026-03-05",
			EndDate:   "2026-03-02",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("unparseable date rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			Type:      leave.TypePaid,
			StartDate: "03-04-05",
			EndDate:   "2026-03-05",
		})
		assert.Error(t, err)
	})

	t.Run("comp off with insufficient balance rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.users.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return &user.User{ID: uuid.MustParse(actorID), IsActive: true, CompOffBalance: 1}, nil
		}

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			Type:      leave.TypeCompOff,
			StartDate: "2026-03-02",
			EndDate:   "2026-03-03",
		})
		assert.ErrorIs(t, err, balance.ErrInsufficientBalance)
	})
}

func TestLeaveService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	leaveID := uuid.New()

	pendingLeave := func() *leave.Leave {
		return &leave.Leave{
			ID:        leaveID,
			UserID:    ownerID,
			Type:      leave.TypePaid,
			StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			Status:    leave.StatusPending,
		}
	}

	t.Run("owner patch strips privileged fields", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return pendingLeave(), nil
		}
		var saved *leave.Leave
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			saved = l
			return nil
		}

		approved := leave.StatusApproved
		reason := "changed my mind"
		resp, err := deps.service.Update(ctx, ownerID.String(), "EMPLOYEE", leaveID.String(), leave.UpdateLeaveRequest{
			Reason: &reason,
			Status: &approved,
		})
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, leave.StatusPending, saved.Status)
		assert.Equal(t, reason, saved.Reason)
	})

	t.Run("update overlap only considers approved leaves and skips itself", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return pendingLeave(), nil
		}
		var checkedStatuses []string
		var excluded *string
		deps.repo.hasOverlappingFn = func(ctx context.Context, uid string, start, end time.Time, statuses []string, excludeID *string) (bool, error) {
			checkedStatuses = statuses
			excluded = excludeID
			return false, nil
		}

		newEnd := "2026-03-05"
		_, err := deps.service.Update(ctx, ownerID.String(), "EMPLOYEE", leaveID.String(), leave.UpdateLeaveRequest{
			EndDate: &newEnd,
		})
		assert.NoError(t, err)
		assert.Equal(t, []string{leave.StatusApproved}, checkedStatuses)
		assert.NotNil(t, excluded)
		assert.Equal(t, leaveID.String(), *excluded)
	})

	t.Run("non owner denied", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return pendingLeave(), nil
		}

		_, err := deps.service.Update(ctx, uuid.New().String(), "EMPLOYEE", leaveID.String(), leave.UpdateLeaveRequest{})
		assert.ErrorIs(t, err, leaveerrors.ErrAccessDenied)
	})

	t.Run("decided leave locked for owner", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			l := pendingLeave()
			l.Status = leave.StatusApproved
			return l, nil
		}

		_, err := deps.service.Update(ctx, ownerID.String(), "EMPLOYEE", leaveID.String(), leave.UpdateLeaveRequest{})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
	})

	t.Run("admin may patch status", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return pendingLeave(), nil
		}
		var saved *leave.Leave
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			saved = l
			return nil
		}

		rejected := leave.StatusRejected
		why := "headcount freeze"
		_, err := deps.service.Update(ctx, uuid.New().String(), user.RoleAdmin, leaveID.String(), leave.UpdateLeaveRequest{
			Status:       &rejected,
			RejectReason: &why,
		})
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, saved.Status)
		assert.Equal(t, &why, saved.RejectReason)
	})
}

func TestLeaveService_Decide(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	approverID := uuid.New()
	leaveID := uuid.New()

	pendingLeave := func(leaveType string) *leave.Leave {
		return &leave.Leave{
			ID:        leaveID,
			UserID:    ownerID,
			Type:      leaveType,
			StartDate: time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
			Status:    leave.StatusPending,
		}
	}

	t.Run("approve success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return pendingLeave(leave.TypePaid), nil
		}
		var saved *leave.Leave
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			saved = l
			return nil
		}
		deps.notifier.EXPECT().NotifyUser(gomock.Any(), ownerID.String(), "leave.decided", gomock.Any())

		resp, err := deps.service.Decide(ctx, approverID.String(), user.RoleAdmin, leaveID.String(), leave.DecideLeaveRequest{
			Action: leave.StatusApproved,
		})
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, approverID, *saved.ApproverID)
		assert.NotNil(t, saved.DecidedAt)
		assert.Nil(t, saved.RejectReason)
	})

	t.Run("self approval forbidden even for admin", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return pendingLeave(leave.TypePaid), nil
		}

		_, err := deps.service.Decide(ctx, ownerID.String(), user.RoleAdmin, leaveID.String(), leave.DecideLeaveRequest{
			Action: leave.StatusApproved,
		})
		assert.ErrorIs(t, err, leaveerrors.ErrSelfApproval)
	})

	t.Run("non manager cannot decide", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return pendingLeave(leave.TypePaid), nil
		}
		deps.users.isManagerOfFn = func(ctx context.Context, mid, uid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Decide(ctx, approverID.String(), "EMPLOYEE", leaveID.String(), leave.DecideLeaveRequest{
			Action: leave.StatusApproved,
		})
		assert.ErrorIs(t, err, leaveerrors.ErrNotAuthorizedApprover)
	})

	t.Run("approval re-checks approved overlap", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return pendingLeave(leave.TypePaid), nil
		}
		deps.repo.hasOverlappingFn = func(ctx context.Context, uid string, start, end time.Time, statuses []string, excludeID *string) (bool, error) {
			assert.Equal(t, []string{leave.StatusApproved}, statuses)
			return true, nil
		}

		_, err := deps.service.Decide(ctx, approverID.String(), user.RoleAdmin, leaveID.String(), leave.DecideLeaveRequest{
			Action: leave.StatusApproved,
		})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})

	t.Run("comp off approval spends balance per day", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return pendingLeave(leave.TypeCompOff), nil
		}
		var appliedDelta float64
		var appliedKind balance.Kind
		deps.ledger.applyFn = func(ctx context.Context, tx *sql.Tx, uid string, kind balance.Kind, delta float64, causeID string) error {
			appliedKind = kind
			appliedDelta = delta
			assert.Equal(t, ownerID.String(), uid)
			assert.Equal(t, leaveID.String(), causeID)
			return nil
		}
		deps.notifier.EXPECT().NotifyUser(gomock.Any(), ownerID.String(), "leave.decided", gomock.Any())

		_, err := deps.service.Decide(ctx, approverID.String(), user.RoleAdmin, leaveID.String(), leave.DecideLeaveRequest{
			Action: leave.StatusApproved,
		})
		assert.NoError(t, err)
		assert.Equal(t, balance.KindCompOff, appliedKind)
		assert.Equal(t, -2.0, appliedDelta)
	})

	t.Run("comp off approval aborts on insufficient balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return pendingLeave(leave.TypeCompOff), nil
		}
		deps.ledger.applyFn = func(ctx context.Context, tx *sql.Tx, uid string, kind balance.Kind, delta float64, causeID string) error {
			return balance.ErrInsufficientBalance
		}

		_, err := deps.service.Decide(ctx, approverID.String(), user.RoleAdmin, leaveID.String(), leave.DecideLeaveRequest{
			Action: leave.StatusApproved,
		})
		assert.ErrorIs(t, err, balance.ErrInsufficientBalance)
	})

	t.Run("reject stores reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return pendingLeave(leave.TypePaid), nil
		}
		var saved *leave.Leave
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			saved = l
			return nil
		}
		deps.notifier.EXPECT().NotifyUser(gomock.Any(), ownerID.String(), "leave.decided", gomock.Any())

		_, err := deps.service.Decide(ctx, approverID.String(), user.RoleAdmin, leaveID.String(), leave.DecideLeaveRequest{
			Action: leave.StatusRejected,
			Reason: "team is short-staffed",
		})
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, saved.Status)
		assert.Equal(t, "team is short-staffed", *saved.RejectReason)
	})

	t.Run("already decided leave rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			l := pendingLeave(leave.TypePaid)
			l.Status = leave.StatusRejected
			return l, nil
		}

		_, err := deps.service.Decide(ctx, approverID.String(), user.RoleAdmin, leaveID.String(), leave.DecideLeaveRequest{
			Action: leave.StatusApproved,
		})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveAlreadyProcessed)
	})
}

func TestLeaveService_Hide(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	leaveID := uuid.New()

	existing := func() *leave.Leave {
		return &leave.Leave{ID: leaveID, UserID: ownerID, Status: leave.StatusApproved}
	}

	t.Run("admin hides from admin view only", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return existing(), nil
		}
		var saved *leave.Leave
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			saved = l
			return nil
		}

		err := deps.service.Hide(ctx, uuid.New().String(), user.RoleAdmin, leaveID.String())
		assert.NoError(t, err)
		assert.True(t, saved.IsAdminDeleted)
		assert.False(t, saved.IsEmployeeDeleted)
		assert.Equal(t, leave.StatusApproved, saved.Status)
	})

	t.Run("owner hides from own view only", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return existing(), nil
		}
		var saved *leave.Leave
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			saved = l
			return nil
		}

		err := deps.service.Hide(ctx, ownerID.String(), "EMPLOYEE", leaveID.String())
		assert.NoError(t, err)
		assert.False(t, saved.IsAdminDeleted)
		assert.True(t, saved.IsEmployeeDeleted)
	})

	t.Run("stranger denied", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return existing(), nil
		}

		err := deps.service.Hide(ctx, uuid.New().String(), "EMPLOYEE", leaveID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrAccessDenied)
	})
}

func TestLeaveService_GetAll(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("admin sees every visible leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		called := false
		deps.repo.findAllFn = func(ctx context.Context) ([]leave.Leave, error) {
			called = true
			return []leave.Leave{}, nil
		}

		_, err := deps.service.GetAll(ctx, actorID, user.RoleAdmin)
		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("employee sees only own leaves", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		var requestedUser string
		deps.repo.findAllByUserFn = func(ctx context.Context, uid string) ([]leave.Leave, error) {
			requestedUser = uid
			return []leave.Leave{}, nil
		}

		_, err := deps.service.GetAll(ctx, actorID, "EMPLOYEE")
		assert.NoError(t, err)
		assert.Equal(t, actorID, requestedUser)
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		deps.repo.findAllFn = func(ctx context.Context) ([]leave.Leave, error) {
			return nil, errors.New("db down")
		}

		_, err := deps.service.GetAll(ctx, actorID, user.RoleAdmin)
		assert.Error(t, err)
	})
}
