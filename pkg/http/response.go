package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSONResponse writes data as the raw response body.
func JSONResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, data)
}

// SuccessResponse writes a 200 with data as the body.
func SuccessResponse(c echo.Context, data interface{}) error {
	return JSONResponse(c, http.StatusOK, data)
}

// ErrorResponse writes {"error": message} with statusCode.
func ErrorResponse(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, ErrorBody{Error: message})
}

// BadRequestResponse writes a 400 error.
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message)
}

// TooManyRequestsResponse writes a 429 error.
func TooManyRequestsResponse(c echo.Context) error {
	return ErrorResponse(c, http.StatusTooManyRequests, "rate limited")
}

// InternalServerErrorResponse writes a 500 error.
func InternalServerErrorResponse(c echo.Context, message string) error {
	if message == "" {
		message = http.StatusText(http.StatusInternalServerError)
	}
	return ErrorResponse(c, http.StatusInternalServerError, message)
}

// AppErrorResponse writes an application error with its status, or a 500 carrying err's message.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponse(c, appErr.Status, appErr.Message)
	}
	return InternalServerErrorResponse(c, err.Error())
}
