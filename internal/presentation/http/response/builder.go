package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/pkg/errorbank"
)

// Builder helps construct consistent HTTP responses.
//
// Successful writes render {"message": ..., <fields>}, reads render their
// data as-is, and failures render {"error": ..., "kind": ...}.
type Builder struct {
	ctx     echo.Context
	status  int
	message string
	data    any
	fields  map[string]any
	err     error
	logger  *zap.Logger
}

// New instantiates a Builder for the provided request context.
func New(ctx echo.Context) *Builder {
	return &Builder{ctx: ctx, status: http.StatusOK}
}

// WithLogger records internal failures on the given logger.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithStatus overrides the response status code.
func (b *Builder) WithStatus(status int) *Builder {
	if status > 0 {
		b.status = status
	}
	return b
}

// WithMessage sets the acknowledgement message of a write.
func (b *Builder) WithMessage(message string) *Builder {
	b.message = message
	return b
}

// WithData attaches a payload rendered verbatim as the body.
func (b *Builder) WithData(data any) *Builder {
	b.data = data
	return b
}

// WithField adds a top-level field next to the message.
func (b *Builder) WithField(key string, value any) *Builder {
	if key == "" {
		return b
	}
	if b.fields == nil {
		b.fields = make(map[string]any)
	}
	b.fields[key] = value
	return b
}

// WithError records an error to be rendered.
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	return b
}

// Build finalises and emits the HTTP response.
func (b *Builder) Build() error {
	if b.err != nil {
		return b.buildError()
	}
	return b.buildSuccess()
}

func (b *Builder) buildSuccess() error {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	if b.data != nil {
		return b.ctx.JSON(b.status, b.data)
	}
	payload := make(map[string]any, len(b.fields)+1)
	for k, v := range b.fields {
		payload[k] = v
	}
	if b.message != "" {
		payload["message"] = b.message
	}
	return b.ctx.JSON(b.status, payload)
}

func (b *Builder) buildError() error {
	appErr := errorbank.From(b.err)
	status := b.status
	if status < 400 {
		status = appErr.StatusCode()
	}
	if status >= http.StatusInternalServerError && b.logger != nil {
		b.logger.Error("request failed",
			zap.String("method", b.ctx.Request().Method),
			zap.String("path", b.ctx.Path()),
			zap.Error(appErr),
		)
	}
	payload := struct {
		Error   string         `json:"error"`
		Kind    string         `json:"kind"`
		Details map[string]any `json:"details,omitempty"`
	}{
		Error:   appErr.Message(),
		Kind:    string(appErr.Kind()),
		Details: appErr.Details(),
	}
	return b.ctx.JSON(status, payload)
}
