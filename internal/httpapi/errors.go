package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"go.uber.org/zap"
)

const (
	codeInvalidRequest = "invalid_request"
	codeNotFound       = "not_found"
	codeRemoteFailure  = "remote_failure"
)

var errMissingCartID = errors.New("cart id is missing")

var contractErrors = []error{
	domain.ErrEmptyCartID,
	domain.ErrEmptyLineID,
	domain.ErrEmptyMerchandiseID,
	domain.ErrInvalidQuantity,
	domain.ErrNoLines,
	errMissingCartID,
}

// classify maps an error to the HTTP status and code the client sees.
// Anything that is not a contract violation or a missing resource is a remote failure.
func classify(err error) (int, string) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, codeInvalidRequest
	}
	for _, target := range contractErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, codeInvalidRequest
		}
	}
	if errors.Is(err, domain.ErrCartNotFound) || errors.Is(err, domain.ErrProductNotFound) {
		return http.StatusNotFound, codeNotFound
	}
	return http.StatusBadGateway, codeRemoteFailure
}

func abortWithError(c *gin.Context, err error) {
	status, code := classify(err)

	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Warn("request failed", zap.Error(err))
	}
	_ = c.Error(err)

	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: err.Error()}})
}

func abortBadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorBody{Code: codeInvalidRequest, Message: err.Error()},
	})
}
