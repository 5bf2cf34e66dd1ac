package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request",
		http.StatusBadRequest,
	)

	ErrEmptyBatch = Refine(
		ErrInvalidRequest,
		"Batch request must contain a non-empty query list",
	)

	ErrBatchTooLarge = Refine(
		ErrInvalidRequest,
		"Batch request exceeds the maximum number of queries",
	)

	ErrInvalidParameters = New(
		"INVALID_PARAMETERS",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrNotFound = New(
		"NOT_FOUND",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrIndexError = New(
		"INDEX_ERROR",
		"Search index operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvariantViolation = New(
		"INVARIANT_VIOLATION",
		"Internal consistency check failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
