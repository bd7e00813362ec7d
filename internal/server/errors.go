package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/traintrack/traintrack-api/internal/catalog"
	"github.com/traintrack/traintrack-api/internal/engine"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var vErr *engine.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleError logs the error and writes the mapped status. Catalog outages
// are reported distinctly so callers never mistake "no data" for "no match".
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}
