package v1

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adanyl0v/go-task-store/internal/metrics"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDCtxKey = "request_id"
)

func (h *handlerImpl) HandleRequestID(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to generate request id")
			id = uuid.New()
		}
		requestID = id.String()
	}

	c.Set(requestIDCtxKey, requestID)
	c.Header(requestIDHeader, requestID)
	c.Next()
}

func (h *handlerImpl) HandleAccessLog(c *gin.Context) {
	start := time.Now()
	path := c.Request.URL.Path

	c.Next()

	status := c.Writer.Status()
	event := h.logger.Info()
	if status >= 500 {
		event = h.logger.Error()
	}
	event.
		Str("method", c.Request.Method).
		Str("path", path).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("client_ip", c.ClientIP()).
		Str("request_id", c.GetString(requestIDCtxKey)).
		Msg("http request")
}

func (h *handlerImpl) HandleMetrics(c *gin.Context) {
	start := time.Now()

	c.Next()

	// The route template keeps label cardinality bounded.
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	metrics.RecordHTTPRequestDuration(
		c.Request.Method,
		route,
		strconv.Itoa(c.Writer.Status()),
		time.Since(start),
	)
}
