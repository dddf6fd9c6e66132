package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ParsedError is a database error mapped to an HTTP status and error code.
type ParsedError struct {
	Status  int
	Code    string
	Message string
}

// ParseDBError maps gorm and PostgreSQL driver errors to API errors.
// Unknown errors map to a generic internal database error; the raw
// message is never leaked to the client.
func ParseDBError(err error) ParsedError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ParsedError{
			Status:  http.StatusNotFound,
			Code:    ResourceNotFound,
			Message: "requested resource not found",
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return ParsedError{
				Status:  http.StatusConflict,
				Code:    ResourceAlreadyExists,
				Message: "resource already exists",
			}
		case "23503": // foreign_key_violation
			return ParsedError{
				Status:  http.StatusBadRequest,
				Code:    ValidationInvalidInput,
				Message: "referenced resource does not exist",
			}
		case "23502": // not_null_violation
			return ParsedError{
				Status:  http.StatusBadRequest,
				Code:    ValidationRequired,
				Message: "required field missing",
			}
		case "22001": // string_data_right_truncation
			return ParsedError{
				Status:  http.StatusBadRequest,
				Code:    ValidationInvalidInput,
				Message: "field value too long",
			}
		}
	}

	// SQLite (tests) reports constraint failures as plain strings.
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ParsedError{
			Status:  http.StatusConflict,
			Code:    ResourceAlreadyExists,
			Message: "resource already exists",
		}
	}

	return ParsedError{
		Status:  http.StatusInternalServerError,
		Code:    InternalDatabaseError,
		Message: "database operation failed",
	}
}

// IsDuplicateKey reports whether err is a unique constraint violation.
func IsDuplicateKey(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
