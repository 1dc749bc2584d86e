package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS mirrors the API Gateway CORS configuration so local runs behave the
// same: any origin, GET/POST/OPTIONS, content-type and authorization headers.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "content-type,authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
