package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/tracing"
)

// DashboardOrigins are the dashboard dev servers allowed when none are configured.
var DashboardOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// CORS lets the named dashboard origins call the console with credentials.
// "*" entries are ignored; an empty list means DashboardOrigins.
func CORS(origins []string) gin.HandlerFunc {
	return cors.New(corsConfig(origins))
}

func corsConfig(origins []string) cors.Config {
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" || origin == "*" {
			continue
		}
		allowed = append(allowed, origin)
	}
	if len(allowed) == 0 {
		allowed = append(allowed, DashboardOrigins...)
	}

	return cors.Config{
		AllowOrigins: allowed,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders:     []string{"Content-Type", "Accept", "Origin", RequestIDHeader, tracing.Header},
		ExposeHeaders:    []string{RequestIDHeader, tracing.Header},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
