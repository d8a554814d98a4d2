package autoleave

import (
	"net/http"
	"strconv"
	"time"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/dateutil"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("autoleave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("autoleave.handler")
	}
	return &Handler{service: service, logger: l}
}

var timeNow = time.Now

type runRequest struct {
	Date string `json:"date"`
}

// Run memicu job secara manual; tanpa tanggal, hari kantor berjalan
// yang dipakai.
func (h *Handler) Run(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	date := dateutil.OfficeToday(timeNow())
	if req.Date != "" {
		parsed, err := dateutil.ParseDay(req.Date)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			return
		}
		date = parsed
	}

	result, err := h.service.MarkAutoLeavesForDate(c.Request.Context(), date)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("manual auto leave run failed",
			zap.String("date", result.RunDate),
			zap.Int("status", httpErr.Status),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	runs, err := h.service.ListRuns(c.Request.Context(), limit)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, runs, nil)
}
