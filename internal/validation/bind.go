package validation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BindAndValidate binds the JSON body into `out`. On failure it writes the
// single-message 400 response shape and returns an error so the handler can
// short-circuit. Rule evaluation (CheckSubmission) is the caller's job;
// binding only rejects missing or unparseable bodies.
func BindAndValidate(c *gin.Context, out interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Request body is required"})
		return errors.New("empty request body")
	}

	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
		return err
	}
	return nil
}
