package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	godos "github.com/reoring/godos"
	"github.com/reoring/godos/openapi"
	"github.com/reoring/godos/source"
)

// HeaderRequestID carries the request id in and out of the adapters.
const HeaderRequestID = "X-Request-ID"

// Request is what a Handler sees: the validated body and the request id.
type Request struct {
	ID   string
	Body map[string]any
}

// Handler produces a status and an unmasked body. The body is passed through
// CreateOutput before it reaches the client, so it may carry extra fields.
type Handler func(ctx context.Context, req Request) (int, map[string]any, error)

// Endpoint binds a contract to a route and the handler serving it.
type Endpoint struct {
	Path     string
	Method   string
	Contract openapi.Contract
	Handle   Handler
}

// Response is the framework-neutral result of Serve.
type Response struct {
	Status int
	Body   any
}

type ctxKeyRequestID struct{}

// ContextWithRequestID attaches a request id to the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, id)
}

// RequestIDFromContext retrieves the request id attached by ContextWithRequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyRequestID{}).(string)
	return id, ok && id != ""
}

// RequestID returns the incoming header value, or a fresh uuid when it is empty.
func RequestID(header string) string {
	if id := strings.TrimSpace(header); id != "" {
		return id
	}
	return uuid.NewString()
}

// ErrorPayload shapes a single message for JSON responses.
func ErrorPayload(message string) map[string]any {
	return map[string]any{"message": message}
}

// Serve runs one request through the endpoint's contract:
// decode, ValidateInput, the handler, then CreateOutput.
func Serve(ctx context.Context, logger *slog.Logger, ep Endpoint, body io.Reader) Response {
	if logger == nil {
		logger = slog.Default()
	}
	id, ok := RequestIDFromContext(ctx)
	if !ok {
		id = uuid.NewString()
		ctx = ContextWithRequestID(ctx, id)
	}
	log := logger.With(
		"requestId", id,
		"path", ep.Path,
		"method", strings.ToUpper(ep.Method),
	)

	if ep.Contract == nil || ep.Handle == nil {
		log.ErrorContext(ctx, "endpoint is missing a contract or handler")
		return internalError()
	}

	// An empty body is an empty object; required fields still reject it.
	obj, err := source.Decode(body, source.AllowEmpty())
	if err != nil {
		log.DebugContext(ctx, "request body rejected", "error", err)
		return Response{Status: http.StatusBadRequest, Body: ErrorPayload(err.Error())}
	}

	if status, report := godos.ValidateInput(obj.Map(), ep.Contract.InputSchema(), godos.WithKeyOrders(obj.KeyOrders())); !report.Empty() {
		log.DebugContext(ctx, "input validation failed", "message", report.Message, "fields", len(report.FieldErrorMessages))
		return Response{Status: status, Body: report}
	}

	status, raw, err := ep.Handle(ctx, Request{ID: id, Body: obj.Map()})
	if err != nil {
		log.ErrorContext(ctx, "handler failed", "error", err)
		return internalError()
	}

	status, out, err := godos.CreateOutput(status, raw, ep.Contract.OutputSchema())
	if err != nil {
		if ve, ok := godos.AsValidationError(err); ok {
			// ve.Message quotes the raw value; it stays in the log.
			log.ErrorContext(ctx, "output contract violated", "code", ve.Code, "field", ve.Field, "error", ve.Message)
			return internalError()
		}
		log.ErrorContext(ctx, "output masking failed", "error", err)
		return internalError()
	}

	log.InfoContext(ctx, "request served", "status", status)
	return Response{Status: status, Body: out}
}

func internalError() Response {
	return Response{
		Status: http.StatusInternalServerError,
		Body:   ErrorPayload(http.StatusText(http.StatusInternalServerError)),
	}
}

// DocumentAll adds every endpoint's contract to doc.
func DocumentAll(doc *openapi.Document, eps []Endpoint, opts ...openapi.BuildOption) error {
	for _, ep := range eps {
		if err := doc.Document(ep.Contract, ep.Path, ep.Method, opts...); err != nil {
			return err
		}
	}
	return nil
}
