package response

import (
	"errors"
	"net/http"

	"anoa.com/edusphere/pkg/apperror"
	"anoa.com/edusphere/pkg/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextEmailKey is where the auth middleware stores the verified email claim.
const ContextEmailKey = "email"

// GetEmail retrieves the authenticated email from the context
func GetEmail(c *gin.Context) (string, error) {
	email := c.GetString(ContextEmailKey)
	if email == "" {
		return "", apperror.ErrUnauthorized
	}
	return email, nil
}

// partialFailure is implemented by errors that report a stored record whose
// follow-up write failed.
type partialFailure interface {
	InsertedID() string
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", code),
			zap.Error(err),
		)
	}

	var partial partialFailure
	if errors.As(err, &partial) {
		c.JSON(code, gin.H{
			"error":       err.Error(),
			"code":        "counter_update_failed",
			"inserted_id": partial.InsertedID(),
		})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// ValidationError reports a request binding failure as 400 with readable field messages.
func ValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
}
