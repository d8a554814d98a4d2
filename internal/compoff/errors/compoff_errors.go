package compofferrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrCompOffNotFound = apperror.New(
		apperror.CodeNotFound,
		"comp off grant not found",
		http.StatusNotFound,
	)
	ErrCompOffUsed = apperror.New(
		apperror.CodeConflict,
		"comp off grant has already been used",
		http.StatusConflict,
	)
	ErrInvalidDuration = apperror.New(
		apperror.CodeInvalidInput,
		"duration must be a positive half-day multiple",
		http.StatusBadRequest,
	)
)
