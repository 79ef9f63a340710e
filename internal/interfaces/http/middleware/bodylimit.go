package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propertyops/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size. The
// body is also wrapped in a MaxBytesReader so chunked requests without
// a Content-Length are bounded too.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Request body exceeds maximum allowed size"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
