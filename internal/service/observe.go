package service

import (
	"errors"

	"notekeeper-be/internal/metrics"
	"notekeeper-be/internal/pkg/apperror"
)

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperror.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperror.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

func observe(operation string, err error) {
	metrics.NoteOperationsTotal.WithLabelValues(operation, outcome(err)).Inc()
}
