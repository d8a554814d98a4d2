package correctionerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrMissingFields = apperror.New(
		apperror.CodeInvalidInput,
		"date, check_in, check_out, reason and a witness are required",
		http.StatusBadRequest,
	)
	ErrCheckOutBeforeCheckIn = apperror.New(
		apperror.CodeInvalidInput,
		"check_out must be after check_in",
		http.StatusBadRequest,
	)
	ErrWitnessInvalid = apperror.New(
		apperror.CodeInvalidInput,
		"witness user not found or inactive",
		http.StatusBadRequest,
	)
	ErrAttendanceAlreadyMarked = apperror.New(
		apperror.CodeConflict,
		"attendance already marked for this date",
		http.StatusConflict,
	)
	ErrDuplicatePending = apperror.New(
		apperror.CodeConflict,
		"a pending correction already exists for this date",
		http.StatusConflict,
	)
	ErrCorrectionNotFound = apperror.New(
		apperror.CodeNotFound,
		"correction not found",
		http.StatusNotFound,
	)
	ErrCorrectionNotPending = apperror.New(
		apperror.CodeConflict,
		"correction has already been decided",
		http.StatusConflict,
	)
	ErrAccessDenied = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to access this correction",
		http.StatusForbidden,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
)
