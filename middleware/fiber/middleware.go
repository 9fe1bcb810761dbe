package fibermw

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/reoring/godos/middleware"
)

// Handler serves ep. The request id is taken from X-Request-ID (or generated),
// echoed back in the response header and stored in the user context.
func Handler(ep middleware.Endpoint, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := middleware.RequestID(c.Get(middleware.HeaderRequestID))
		c.Set(middleware.HeaderRequestID, id)
		ctx := middleware.ContextWithRequestID(c.UserContext(), id)
		c.SetUserContext(ctx)

		resp := middleware.Serve(ctx, logger, ep, bytes.NewReader(c.Body()))
		return c.Status(resp.Status).JSON(resp.Body)
	}
}

// Register mounts every endpoint on r under its own method and path.
func Register(r fiber.Router, logger *slog.Logger, eps ...middleware.Endpoint) {
	for _, ep := range eps {
		r.Add(strings.ToUpper(ep.Method), ep.Path, Handler(ep, logger))
	}
}

// GetRequestID fetches the request id from the fiber user context.
func GetRequestID(c *fiber.Ctx) (string, bool) {
	return middleware.RequestIDFromContext(c.UserContext())
}
