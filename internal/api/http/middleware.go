package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/observability"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and
// logging. The request logger wraps the error middleware so that it sees the
// final status.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration, exposeErrors bool) {
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics, exposeErrors))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, exposeErrors bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("request_id", observability.RequestID(c)))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(routePath(c), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed",
						zap.String("path", c.Path()),
						zap.String("request_id", observability.RequestID(c)),
						zap.Error(domainErr))
				}
				err = writeError(c, domainErr, exposeErrors)
			}
		}()
		return c.Next()
	}
}

// ErrorHandler renders errors that escape the middleware chain, such as body
// size violations detected before routing.
func ErrorHandler(logger *zap.Logger, exposeErrors bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		domainErr := apperrors.ToDomainError(err)
		if domainErr.HTTPStatus >= 500 {
			logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
		}
		return writeError(c, domainErr, exposeErrors)
	}
}

func writeError(c *fiber.Ctx, domainErr *apperrors.DomainError, exposeErrors bool) error {
	response := fiber.Map{
		"success": false,
		"message": domainErr.Message,
		"code":    domainErr.Code,
	}
	if len(domainErr.Details) > 0 {
		response["errors"] = domainErr.Details
	}
	if exposeErrors && domainErr.Err != nil {
		response["error"] = domainErr.Err.Error()
	}
	return c.Status(domainErr.HTTPStatus).JSON(response)
}

func routePath(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" {
		return r.Path
	}
	return c.Path()
}
