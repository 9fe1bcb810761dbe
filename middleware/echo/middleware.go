package echomw

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reoring/godos/middleware"
)

// Handler serves ep. The request id is taken from X-Request-ID (or generated),
// echoed back in the response header and stored in the request context.
func Handler(ep middleware.Endpoint, logger *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		id := middleware.RequestID(req.Header.Get(middleware.HeaderRequestID))
		c.Response().Header().Set(middleware.HeaderRequestID, id)
		ctx := middleware.ContextWithRequestID(req.Context(), id)
		c.SetRequest(req.WithContext(ctx))

		resp := middleware.Serve(ctx, logger, ep, req.Body)
		return c.JSON(resp.Status, resp.Body)
	}
}

// Register mounts every endpoint on e under its own method and path.
func Register(e *echo.Echo, logger *slog.Logger, eps ...middleware.Endpoint) {
	for _, ep := range eps {
		e.Add(strings.ToUpper(ep.Method), ep.Path, Handler(ep, logger))
	}
}

// GetRequestID fetches the request id from echo.Context.
func GetRequestID(c echo.Context) (string, bool) {
	return middleware.RequestIDFromContext(c.Request().Context())
}
