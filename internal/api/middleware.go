package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"

	// multipartOverhead leaves room for form boundaries and fields
	multipartOverhead = 1 << 20
)

// requestID tags every request with an id, reusing one sent by the client
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("%s %s status=%d duration=%.2fms request_id=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			float64(time.Since(start).Nanoseconds())/1e6, c.GetString(requestIDKey))
	}
}

// limitBody caps request bodies at the configured upload size
func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload+multipartOverhead)
		c.Next()
	}
}

// throttle holds a request until analysis capacity is free. A client that
// gives up while waiting is dropped without a body.
func (s *Server) throttle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.analysisSem.Acquire(c.Request.Context(), 1); err != nil {
			s.logger.Warn("%s abandoned while waiting for capacity request_id=%s",
				c.Request.URL.Path, c.GetString(requestIDKey))
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		defer s.analysisSem.Release(1)
		c.Next()
	}
}
