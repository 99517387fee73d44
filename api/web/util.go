package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func addExpirationHeaders(c echo.Context, now time.Time, expiration time.Duration) {
	now = now.UTC()
	expiresAt := now.Add(expiration)

	res := c.Response()
	res.Header().Set("Date", now.Format(http.TimeFormat))
	res.Header().Set("Expires", expiresAt.Format(http.TimeFormat))
	res.Header().Set(echo.HeaderCacheControl, fmt.Sprintf("public, max-age=%d, must-revalidate", int(expiration.Seconds())))
}

func noCache(c echo.Context) {
	res := c.Response()
	res.Header().Del("Expires")
	res.Header().Set(echo.HeaderCacheControl, "private, no-cache, no-store, max-age=0, must-revalidate")
}

type HTTPErrorOption func(e *HTTPError)

type HTTPError struct {
	code        int
	message     string
	cause       error
	unmaskCause bool
}

func (e *HTTPError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%d %s: %s", e.code, e.message, e.cause)
	}

	return fmt.Sprintf("%d %s", e.code, e.message)
}

func (e *HTTPError) Unwrap() error {
	return e.cause
}

func (e *HTTPError) Code() int {
	return e.code
}

// Message is the text shown to clients. The cause is only included when unmasked.
func (e *HTTPError) Message() string {
	message := e.message
	if message == "" {
		message = http.StatusText(e.code)
	}

	if e.unmaskCause && e.cause != nil {
		message += ": " + e.cause.Error()
	}

	return message
}

func WithMessage(message string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.message = message
	}
}

func WithCause(cause error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.cause = cause
	}
}

func WithUnmaskedCause() HTTPErrorOption {
	return func(e *HTTPError) {
		e.unmaskCause = true
	}
}

func NewHTTPError(code int, opts ...HTTPErrorOption) *HTTPError {
	err := new(HTTPError)
	err.code = code

	for _, opt := range opts {
		opt(err)
	}

	return err
}
