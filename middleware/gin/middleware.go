package ginmw

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reoring/godos/middleware"
)

// Handler serves ep. The request id is taken from X-Request-ID (or generated),
// echoed back in the response header and stored in the request context.
// Responses with a status of 400 or above abort the chain.
func Handler(ep middleware.Endpoint, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := middleware.RequestID(c.GetHeader(middleware.HeaderRequestID))
		c.Header(middleware.HeaderRequestID, id)
		ctx := middleware.ContextWithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)

		resp := middleware.Serve(ctx, logger, ep, c.Request.Body)
		if resp.Status >= 400 {
			c.AbortWithStatusJSON(resp.Status, resp.Body)
			return
		}
		c.JSON(resp.Status, resp.Body)
	}
}

// Register mounts every endpoint on r under its own method and path.
func Register(r gin.IRoutes, logger *slog.Logger, eps ...middleware.Endpoint) {
	for _, ep := range eps {
		r.Handle(strings.ToUpper(ep.Method), ep.Path, Handler(ep, logger))
	}
}

// GetRequestID fetches the request id from gin.Context.
func GetRequestID(c *gin.Context) (string, bool) {
	return middleware.RequestIDFromContext(c.Request.Context())
}
