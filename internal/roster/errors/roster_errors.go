package rostererrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrHolidayExists = apperror.New(
		apperror.CodeConflict,
		"a holiday already exists on this date",
		http.StatusConflict,
	)
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"holiday not found",
		http.StatusNotFound,
	)
	ErrInvalidWeekday = apperror.New(
		apperror.CodeInvalidInput,
		"off_day must be a weekday name",
		http.StatusBadRequest,
	)
	ErrWeeklyOffShape = apperror.New(
		apperror.CodeInvalidInput,
		"fixed weekly offs need off_day, one-time offs need off_date",
		http.StatusBadRequest,
	)
	ErrWeeklyOffNotFound = apperror.New(
		apperror.CodeNotFound,
		"weekly off not found",
		http.StatusNotFound,
	)
)
