package department

import (
	"context"
	"errors"
	"time"

	departmenterrors "go-hrms/internal/department/errors"
	"go-hrms/internal/user"
	usererrors "go-hrms/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentDetailResponse, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, deptID string, req AssignUserRequest) error
	RemoveMember(ctx context.Context, deptID, userID string) error
	AddManager(ctx context.Context, deptID string, req AssignUserRequest) error
	RemoveManager(ctx context.Context, deptID, userID string) error
}

type service struct {
	repo   Repository
	users  user.Repository
	logger *zap.Logger
}

func NewService(repo Repository, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, users: users, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	dept := &Department{Name: req.Name}
	if err := s.repo.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	s.logger.Info("department created",
		zap.String("department_id", dept.ID.String()),
		zap.String("name", dept.Name),
	)
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentDetailResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentDetailResponse{}, mapRepositoryError(err)
	}

	memberIDs, err := s.repo.MemberIDs(ctx, id)
	if err != nil {
		return DepartmentDetailResponse{}, err
	}
	managerIDs, err := s.repo.ManagerIDs(ctx, id)
	if err != nil {
		return DepartmentDetailResponse{}, err
	}

	return DepartmentDetailResponse{
		DepartmentResponse: mapToResponse(*dept),
		MemberIDs:          uuidStrings(memberIDs),
		ManagerIDs:         uuidStrings(managerIDs),
	}, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) AddMember(ctx context.Context, deptID string, req AssignUserRequest) error {
	return s.addAssignment(ctx, deptID, req.UserID, s.repo.AddMember, departmenterrors.ErrAlreadyAssigned)
}

func (s *service) RemoveMember(ctx context.Context, deptID, userID string) error {
	return s.removeAssignment(ctx, deptID, userID, s.repo.RemoveMember)
}

func (s *service) AddManager(ctx context.Context, deptID string, req AssignUserRequest) error {
	return s.addAssignment(ctx, deptID, req.UserID, s.repo.AddManager, departmenterrors.ErrAlreadyManager)
}

func (s *service) RemoveManager(ctx context.Context, deptID, userID string) error {
	return s.removeAssignment(ctx, deptID, userID, s.repo.RemoveManager)
}

func (s *service) addAssignment(
	ctx context.Context,
	deptID, userID string,
	add func(ctx context.Context, deptID, userID uuid.UUID) error,
	conflict error,
) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return departmenterrors.ErrInvalidUserID
	}

	dept, err := s.repo.FindByID(ctx, deptID)
	if err != nil {
		return mapRepositoryError(err)
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}
	if !u.IsActive {
		return usererrors.ErrUserInactive
	}

	if err := add(ctx, dept.ID, userUUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return conflict
		}
		return err
	}
	return nil
}

func (s *service) removeAssignment(
	ctx context.Context,
	deptID, userID string,
	remove func(ctx context.Context, deptID, userID uuid.UUID) (int64, error),
) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return departmenterrors.ErrInvalidUserID
	}

	dept, err := s.repo.FindByID(ctx, deptID)
	if err != nil {
		return mapRepositoryError(err)
	}

	affected, err := remove(ctx, dept.ID, userUUID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return departmenterrors.ErrAssignmentNotFound
	}
	return nil
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        dept.ID.String(),
		Name:      dept.Name,
		CreatedAt: dept.CreatedAt.Format(time.RFC3339),
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	return err
}
