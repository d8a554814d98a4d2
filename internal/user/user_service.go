package user

import (
	"context"
	"errors"

	usererrors "go-hrms/internal/user/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetProfile(ctx context.Context, actorID string) (UserResponse, error)
	GetByID(ctx context.Context, actorID, role, id string) (UserResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetProfile(ctx context.Context, actorID string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

// GetByID terbuka untuk admin dan manajer langsung user tersebut.
func (s *service) GetByID(ctx context.Context, actorID, role, id string) (UserResponse, error) {
	if role != RoleAdmin && actorID != id {
		manages, err := s.repo.IsManagerOf(ctx, actorID, id)
		if err != nil {
			return UserResponse{}, err
		}
		if !manages {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID.String(),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Role:           u.Role,
		IsActive:       u.IsActive,
		LeaveBalance:   u.LeaveBalance,
		CompOffBalance: u.CompOffBalance,
	}
}
