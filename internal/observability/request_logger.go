package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID carries the request id in and out.
const HeaderRequestID = "X-Request-ID"

// RequestLogger assigns a request id, then logs and measures every request.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, requestID)
		c.Locals("request_id", requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		metrics.RecordRequest(RouteLabel(c), utils.CopyString(c.Method()), status, elapsed)

		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

// RouteLabel returns a copy of the matched route template, such as
// /api/citizens/:nationalId, for use as a metric label.
func RouteLabel(c *fiber.Ctx) string {
	if route := c.Route(); route != nil && route.Path != "" {
		return utils.CopyString(route.Path)
	}
	return "unmatched"
}
