package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"customerapp/internal/core/domain"
	"customerapp/internal/core/model/response"
	"customerapp/pkg/config"
)

type FieldError = response.ValidationError

const MessageUnexpectedError = "unexpected error"

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeConflict        = "CONFLICT"
	CodeNotFound        = "NOT_FOUND"
	CodeBadRequest      = "BAD_REQUEST"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodeInternal        = "INTERNAL_ERROR"
	CodeUnavailable     = "SERVICE_UNAVAILABLE"
)

func SendError(c *gin.Context, statusCode int, code string, errors []FieldError) {
	if errors == nil {
		errors = []FieldError{}
	}

	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	c.JSON(statusCode, errorResponse)
}

func SendValidationError(c *gin.Context, errors []FieldError) {
	SendError(c, http.StatusBadRequest, CodeValidation, errors)
}

func SendInternalError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, CodeInternal, []FieldError{{Field: "server", Message: message}})
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	SendError(c, http.StatusBadRequest, CodeBadRequest, []FieldError{{Field: field, Message: message}})
}

func SendNotFoundError(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, CodeNotFound, []FieldError{{Field: "resource", Message: message}})
}

func SendConflictError(c *gin.Context, field string, message string) {
	if field == "" {
		field = "customer"
	}
	SendError(c, http.StatusConflict, CodeConflict, []FieldError{{Field: field, Message: message}})
}

// SendServiceError maps an error returned by the customer service to its
// HTTP status. Unclassified errors are logged and answered with a generic 500.
func SendServiceError(c *gin.Context, logger *config.LokiLogger, err error) {
	var validationErr *domain.ValidationError
	var conflictErr *domain.ConflictError

	switch {
	case errors.As(err, &validationErr):
		SendValidationError(c, validationErr.Errors)
	case errors.As(err, &conflictErr):
		SendConflictError(c, conflictErr.Field, conflictErr.Message)
	case errors.Is(err, domain.ErrBatchTooLarge):
		SendError(c, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, []FieldError{{Field: "items", Message: domain.ErrBatchTooLarge.Error()}})
	case errors.Is(err, domain.ErrBatchEmpty):
		SendBadRequestError(c, "items", domain.ErrBatchEmpty.Error())
	case errors.Is(err, domain.ErrCustomerNotFound):
		SendNotFoundError(c, domain.ErrCustomerNotFound.Error())
	default:
		if logger != nil {
			logger.ErrorWithTrace(c.Request.Context(), "unexpected service error",
				zap.Error(err),
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()))
		}
		SendInternalError(c, MessageUnexpectedError)
	}
}
