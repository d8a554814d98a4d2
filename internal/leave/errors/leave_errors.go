package leaveerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrMissingFields = apperror.New(
		apperror.CodeInvalidInput,
		"type, start_date and end_date are required",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrHalfDaySingleDate = apperror.New(
		apperror.CodeInvalidInput,
		"Half Day must be for a single date",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrAccessDenied = apperror.New(
		apperror.CodeForbidden,
		"access denied",
		http.StatusForbidden,
	)
	ErrLeaveNotPending = apperror.New(
		apperror.CodeConflict,
		"only pending leaves can be modified",
		http.StatusConflict,
	)
	ErrLeaveAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"leave already processed",
		http.StatusConflict,
	)
	ErrSelfApproval = apperror.New(
		apperror.CodeForbidden,
		"you cannot decide your own leave",
		http.StatusForbidden,
	)
	ErrNotAuthorizedApprover = apperror.New(
		apperror.CodeForbidden,
		"only an admin or the employee's department manager can decide this leave",
		http.StatusForbidden,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
)
