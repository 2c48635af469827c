package api

import (
	"errors"
	"net/http"
)

// AppError is an error that already knows its public HTTP shape.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e *AppError) Error() string {
	return e.Message
}

// HandleError maps an internal error to one of the public HTTP shapes.
// Anything unrecognized becomes a generic 500 so provider/storage internals
// never leak to the client.
func HandleError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		Error(w, appErr.Code, appErr.Message)
		return
	}
	Error(w, http.StatusInternalServerError, "Internal server error")
}
