package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	createFn         func(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn         func(ctx context.Context, actorID, role string) ([]leave.LeaveResponse, error)
	getByIDFn        func(ctx context.Context, actorID, role, id string) (leave.LeaveResponse, error)
	listForManagerFn func(ctx context.Context, managerID string) ([]leave.LeaveResponse, error)
	updateFn         func(ctx context.Context, actorID, role, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error)
	decideFn         func(ctx context.Context, actorID, role, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error)
	deleteFn         func(ctx context.Context, actorID, role, id string) error
	hideFn           func(ctx context.Context, actorID, role, id string) error
}

func (f *fakeLeaveService) Create(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, actorID, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, actorID, role string) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, actorID, role)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, actorID, role, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, actorID, role, id)
}
func (f *fakeLeaveService) ListForManager(ctx context.Context, managerID string) ([]leave.LeaveResponse, error) {
	return f.listForManagerFn(ctx, managerID)
}
func (f *fakeLeaveService) Update(ctx context.Context, actorID, role, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	return f.updateFn(ctx, actorID, role, id, req)
}
func (f *fakeLeaveService) Decide(ctx context.Context, actorID, role, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, actorID, role, id, req)
}
func (f *fakeLeaveService) Delete(ctx context.Context, actorID, role, id string) error {
	return f.deleteFn(ctx, actorID, role, id)
}
func (f *fakeLeaveService) Hide(ctx context.Context, actorID, role, id string) error {
	return f.hideFn(ctx, actorID, role, id)
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success returns 201 envelope", func(t *testing.T) {
		actorID := uuid.New().String()

		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, leave.TypePaid, req.Type)
				return leave.LeaveResponse{
					ID:        uuid.New().String(),
					UserID:    aid,
					Type:      req.Type,
					StartDate: req.StartDate,
					EndDate:   req.EndDate,
					TotalDays: 2,
					Status:    leave.StatusPending,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"type":"PAID","start_date":"2026-03-10","end_date":"2026-03-11","reason":"Family matters"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Nil(t, env.Error)
	})

	t.Run("missing required field returns 400", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"type":"PAID","start_date":"2026-03-10"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("unknown leave type rejected by binding", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"type":"SABBATICAL","start_date":"2026-03-10","end_date":"2026-03-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("overlap maps to 409 conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"type":"PAID","start_date":"2026-03-10","end_date":"2026-03-11"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestLeaveHandler_Decide(t *testing.T) {
	t.Run("self approval maps to 403", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, aid, role, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrSelfApproval
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		body := `{"action":"APPROVED"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/decision", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())
		c.Set("role", user.RoleAdmin)

		h.Decide(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("invalid action rejected by binding", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		body := `{"action":"MAYBE"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/decision", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())
		c.Set("role", user.RoleAdmin)

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("approve success returns 200", func(t *testing.T) {
		leaveID := uuid.New().String()
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, aid, role, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				assert.Equal(t, leave.StatusApproved, req.Action)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		body := `{"action":"APPROVED"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/decision", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())
		c.Set("role", user.RoleAdmin)

		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	t.Run("passes role through to service", func(t *testing.T) {
		actorID := uuid.New().String()
		var gotRole string
		svc := &fakeLeaveService{
			getAllFn: func(ctx context.Context, aid, role string) ([]leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				gotRole = role
				return []leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves", nil)
		c.Set("user_id", actorID)
		c.Set("role", "EMPLOYEE")

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "EMPLOYEE", gotRole)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, aid, role, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/x", nil)
		c.Set("user_id", uuid.New().String())
		c.Set("role", "EMPLOYEE")

		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}
