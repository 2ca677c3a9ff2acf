package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var errInvalidRequestBody = errors.New("invalid request body")

type apiError struct {
	Code    int
	Message string
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// newBindingError turns a gin binding failure into a message naming the
// offending field, falling back to a generic one for malformed JSON.
func newBindingError(err error) apiError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return newBadRequestError(errInvalidRequestBody.Error())
	}

	fieldErr := validationErrs[0]
	field := strings.ToLower(fieldErr.Field())
	if fieldErr.Tag() == "required" {
		return newBadRequestError(fmt.Sprintf("%s is required", field))
	}
	return newBadRequestError(fmt.Sprintf("%s is invalid", field))
}
