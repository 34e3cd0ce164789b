package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/clinicdesk/scheduler-api/pkg/errors"
)

type Response struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
	Data    interface{}            `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// HTTPStatus maps business error codes to HTTP statuses. Expected
// scheduling failures (duplicate, no specialist, slot taken, bad
// state) are conflicts, not server errors.
func HTTPStatus(code errors.ErrorCode) int {
	switch code {
	case errors.ErrValidation:
		return http.StatusBadRequest
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrDuplicateID, errors.ErrNoMatchingSpecialist,
		errors.ErrSlotUnavailable, errors.ErrInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError renders err as a JSON error response with the mapped
// status, carrying the error's context fields for display.
func RespondError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		c.JSON(HTTPStatus(appErr.Code), &Response{
			Status:  "error",
			Message: appErr.Message,
			Details: appErr.Context,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
}

// RespondBindingError renders request binding failures as 400s with a
// field-level message when the validator produced one.
func RespondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		details := make(map[string]interface{}, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = "failed on " + fe.Tag()
		}
		c.JSON(http.StatusBadRequest, &Response{
			Status:  "error",
			Message: "invalid request",
			Details: details,
		})
		return
	}
	c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
}
