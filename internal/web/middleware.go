package web

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/julianstephens/auri/internal/constants"
	"github.com/julianstephens/auri/internal/logger"
)

// configureMiddleware sets up middleware for the server.
func (s *Server) configureMiddleware() {
	// The body limit runs before method override because the override reads the form.
	s.Echo.Pre(middleware.BodyLimit(constants.MaxImportBodySize))
	s.Echo.Pre(middleware.MethodOverrideWithConfig(middleware.MethodOverrideConfig{
		Getter: middleware.MethodFromForm("_method"),
	}))

	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.Echo.Use(requestLogger())
}

// requestLogger sends one line per request to the application log.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			keyvals := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", v.RequestID,
			}

			switch {
			case v.Error != nil:
				logger.Error("HTTP request", append(keyvals, "error", v.Error)...)
			case v.Status >= 400:
				logger.Warn("HTTP request", keyvals...)
			default:
				logger.Info("HTTP request", keyvals...)
			}
			return nil
		},
	})
}
