package user_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	findByIDFn    func(ctx context.Context, id string) (*user.User, error)
	isManagerOfFn func(ctx context.Context, managerID, userID string) (bool, error)
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository { return f }
func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &user.User{ID: uuid.MustParse(id), FirstName: "Asha", IsActive: true}, nil
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

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("returns own profile", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepository{})

		resp, err := svc.GetProfile(ctx, actorID)
		assert.NoError(t, err)
		assert.Equal(t, actorID, resp.ID)
		assert.Equal(t, "Asha", resp.FirstName)
	})

	t.Run("missing user not found", func(t *testing.T) {
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := user.NewService(repo)

		_, err := svc.GetProfile(ctx, actorID)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	targetID := uuid.New().String()

	t.Run("admin reads anyone", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepository{})

		resp, err := svc.GetByID(ctx, actorID, user.RoleAdmin, targetID)
		assert.NoError(t, err)
		assert.Equal(t, targetID, resp.ID)
	})

	t.Run("self read allowed", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepository{})

		_, err := svc.GetByID(ctx, actorID, "EMPLOYEE", actorID)
		assert.NoError(t, err)
	})

	t.Run("manager reads direct report", func(t *testing.T) {
		repo := &fakeUserRepository{
			isManagerOfFn: func(ctx context.Context, managerID, userID string) (bool, error) {
				assert.Equal(t, actorID, managerID)
				assert.Equal(t, targetID, userID)
				return true, nil
			},
		}
		svc := user.NewService(repo)

		_, err := svc.GetByID(ctx, actorID, "MANAGER", targetID)
		assert.NoError(t, err)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		svc := user.NewService(&fakeUserRepository{})

		_, err := svc.GetByID(ctx, actorID, "EMPLOYEE", targetID)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}
