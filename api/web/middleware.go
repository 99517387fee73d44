package web

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/explore-flights/multimodal/api/business/itinerary"
	"github.com/labstack/echo/v4"
)

func NoCacheOnErrorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				noCache(c)
			}

			return err
		}
	}
}

func NeverCacheMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			noCache(c)
			err := next(c)
			noCache(c)
			return err
		}
	}
}

// ErrorLogAndMaskMiddleware translates handler errors into HTTP errors, logging server side failures.
// Causes never reach the client unless explicitly unmasked.
func ErrorLogAndMaskMiddleware(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var echoErr *echo.HTTPError
			if errors.As(err, &echoErr) {
				return echoErr
			}

			httpErr := toHTTPError(err)
			if httpErr.code >= http.StatusInternalServerError {
				logger.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
			}

			return echo.NewHTTPError(httpErr.code, httpErr.Message()).SetInternal(err)
		}
	}
}

func toHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	var inputErr *itinerary.ClientInputError
	var inconsistencyErr *itinerary.DataInconsistencyError
	var unavailableErr *itinerary.UpstreamUnavailableError
	var timeoutErr *itinerary.UpstreamTimeoutError

	switch {
	case errors.As(err, &httpErr):
		return httpErr

	case errors.As(err, &inputErr):
		return NewHTTPError(http.StatusBadRequest, WithMessage(inputErr.Error()), WithCause(err))

	case errors.As(err, &inconsistencyErr):
		return NewHTTPError(http.StatusInternalServerError, WithMessage("inconsistent catalog data"), WithCause(err))

	case errors.As(err, &timeoutErr):
		return NewHTTPError(http.StatusGatewayTimeout, WithMessage(timeoutErr.Upstream+" timed out"), WithCause(err))

	case errors.As(err, &unavailableErr):
		return NewHTTPError(http.StatusBadGateway, WithMessage(unavailableErr.Upstream+" unavailable"), WithCause(err))

	case errors.Is(err, context.DeadlineExceeded):
		return NewHTTPError(http.StatusGatewayTimeout, WithCause(err))

	default:
		return NewHTTPError(http.StatusInternalServerError, WithCause(err))
	}
}
