/*
Package monitoring collects Prometheus metrics for the outreach console.

# Metrics

  - console_session_state: 1 for the current session state, 0 otherwise
  - console_session_logins_total: login attempts by outcome
  - console_session_logouts_total: logouts
  - console_backend_requests_total / _duration_seconds: outbound backend calls
  - console_http_requests_total / _duration_seconds: console server traffic
  - console_ws_connections: open session event streams
  - console_circuit_state: outbound circuit breaker position

Every collector is registered on the Registerer passed to NewMetrics, so tests
and embedded uses never touch the global registry. All recording methods are
safe on a nil *Metrics.

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
*/
package monitoring
