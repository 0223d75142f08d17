package console

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/outreach-console/internal/domain/session"
	"github.com/GriffinCanCode/outreach-console/internal/domain/view"
	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

// sessionResponse is a snapshot plus the view it gates to. The token itself
// is never serialized.
type sessionResponse struct {
	session.Snapshot
	View view.View `json:"view"`
}

func newSessionResponse(snap session.Snapshot) sessionResponse {
	return sessionResponse{Snapshot: snap, View: view.Gate(snap)}
}

type loginResponse struct {
	OK      bool            `json:"ok"`
	Outcome string          `json:"outcome"`
	Message string          `json:"message"`
	Session sessionResponse `json:"session"`
}

// loginStatus maps a login outcome to a response status.
func loginStatus(o session.Outcome) int {
	switch o.Kind {
	case session.OutcomeSuccess:
		return http.StatusOK
	case session.OutcomeRejected:
		if o.Status >= 500 {
			return http.StatusBadGateway
		}
		return http.StatusUnauthorized
	case session.OutcomeStorage:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, newSessionResponse(s.session.Snapshot()))
}

func (s *Server) login(c *gin.Context) {
	var creds types.Credentials
	if err := c.ShouldBind(&creds); err != nil {
		badRequest(c, "username and password are required")
		return
	}

	outcome := s.session.Login(c.Request.Context(), creds.Username, creds.Password)
	if !outcome.OK() {
		s.logger.Info("Console login failed",
			zap.String("outcome", outcome.Kind.String()),
			zap.Int("status", outcome.Status),
		)
	}

	c.JSON(loginStatus(outcome), loginResponse{
		OK:      outcome.OK(),
		Outcome: outcome.Kind.String(),
		Message: outcome.Message(),
		Session: newSessionResponse(s.session.Snapshot()),
	})
}

func (s *Server) logout(c *gin.Context) {
	s.session.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// requireDashboard only lets requests through when the session gates to the
// dashboard view.
func (s *Server) requireDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch v := view.Gate(s.session.Snapshot()); v {
		case view.ViewDashboard:
			c.Next()
		case view.ViewLoading:
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session is loading", "view": v})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in", "view": v})
		}
	}
}
