package console

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/outreach-console/internal/client"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/resilience"
)

// backendStatus maps a backend call failure to the console's response status.
// Backend 4xx answers pass through; anything else is a gateway failure.
func backendStatus(err error) int {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	case errors.Is(err, resilience.ErrCircuitOpen), errors.Is(err, resilience.ErrProbeLimited):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// fail aborts with the status for err and a sanitized message.
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	status := backendStatus(err)
	msg := http.StatusText(status)

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		msg = s.sanitizer.Text(apiErr.Detail)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// idParam parses the :id path parameter, aborting with 400 when invalid.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}
