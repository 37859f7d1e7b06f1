package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tableside/api/internal/service"
	"go.uber.org/zap"
)

// Postgres error codes the handlers map to 409.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// internalError logs the cause and answers with a generic 500.
func internalError(w http.ResponseWriter, logger *zap.Logger, msg string, err error) {
	logger.Error(msg, zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// writeServiceError maps service errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	switch {
	case service.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrNoOpenGroup):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrStatusChanged),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrGroupContention):
		writeError(w, http.StatusConflict, err.Error())
	default:
		internalError(w, logger, op, err)
	}
}
