package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"dataprep/domain/core"
	"dataprep/internal/errors"

	"github.com/gin-gonic/gin"
)

// respondJSON serializes payload before writing it. NaN and infinities have
// no JSON form; one reaching this point is a defect and the request fails.
func (s *Server) respondJSON(c *gin.Context, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		var unsupported *json.UnsupportedValueError
		if stderrors.As(err, &unsupported) {
			s.logger.Error("DEFECT: non-finite value in %s response: %v request_id=%s",
				c.Request.URL.Path, err, c.GetString(requestIDKey))
		} else {
			s.logger.Error("failed to encode %s response: %v", c.Request.URL.Path, err)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}
	c.Data(status, "application/json; charset=utf-8", body)
}

// respondError maps an error to a status and a {"detail": ...} body.
// Request problems are 400; anything else is logged and hidden.
func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(errors.GetCode(err))
	if core.IsClientError(err) {
		status = http.StatusBadRequest
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("%s failed: %v request_id=%s", c.Request.URL.Path, err, c.GetString(requestIDKey))
		c.AbortWithStatusJSON(status, gin.H{"detail": "internal server error"})
		return
	}

	s.logger.Debug("%s rejected: %v", c.Request.URL.Path, err)
	c.AbortWithStatusJSON(status, gin.H{"detail": err.Error()})
}
