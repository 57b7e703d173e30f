package server

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/msvens/sgallery/internal/archive"
	"github.com/msvens/sgallery/internal/dao"
)

type ApiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("code: %d message: %s", e.Code, e.Message)
}

func newError(code int, message string) *ApiError {
	return &ApiError{Code: code, Message: message}
}

func NotFoundError(message string) *ApiError {
	return newError(http.StatusNotFound, message)
}

func BadRequestError(message string) *ApiError {
	return newError(http.StatusBadRequest, message)
}

func InternalError(message string) *ApiError {
	return newError(http.StatusInternalServerError, message)
}

func ResolveError(err error) *ApiError {
	//check for api error
	var e *ApiError
	if errors.As(err, &e) {
		return e
	}
	//validation errors are rejected before any mutation happens
	if errors.Is(err, dao.ErrDefaultCategory) || errors.Is(err, dao.ErrDuplicateName) {
		return BadRequestError(err.Error())
	}
	if errors.Is(err, archive.ErrNothingToExport) || errors.Is(err, archive.ErrNoManifest) {
		return BadRequestError(err.Error())
	}
	if errors.Is(err, sql.ErrNoRows) {
		return NotFoundError("No such data")
	}
	return InternalError(err.Error())
}
