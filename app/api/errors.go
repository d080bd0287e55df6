package api

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	ErrBadRequest    = errors.New("bad request")
	ErrNotFound      = errors.New("resource not found")
	ErrUnprocessable = errors.New("unprocessable")
)

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "Resource Not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "server error",
}

// StatusFromError maps the sentinel errors above to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnprocessable):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Error logs err with its cause and writes the matching fixed error body.
// The client never sees the cause.
func Error(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	code := StatusFromError(err)

	fields := append(CauseFields(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", code),
	)
	if code >= http.StatusInternalServerError {
		log.Error("request failed", fields...)
	} else {
		log.Warn("request rejected", fields...)
	}

	ErrorWithCode(w, code)
}

// CauseFields describes err for the logs. PostgreSQL errors carry their
// SQLSTATE so constraint violations and connection problems stay
// distinguishable even though clients get the same 422.
func CauseFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		fields = append(fields,
			zap.String("sqlstate", pgErr.Code),
			zap.String("constraint", pgErr.ConstraintName),
			zap.String("table", pgErr.TableName),
		)
	}
	return fields
}
