// Package console serves the operator console over HTTP.
//
// The server exposes the session (login, logout, current snapshot and a
// websocket feed of transitions) and proxies the dashboard operations to the
// outreach backend. Dashboard routes are gated on the session view: 503 while
// the session is still loading, 401 when nobody is signed in.
//
// Routes:
//
//	GET    /healthz
//	GET    /metrics
//	GET    /session
//	POST   /session/login
//	POST   /session/logout
//	GET    /session/events
//	GET    /dashboard/stats
//	GET    /dashboard/analytics
//	GET    /dashboard/prospects
//	POST   /dashboard/prospects/:id/message
//	GET    /dashboard/campaigns
//	POST   /dashboard/campaigns
//	POST   /dashboard/campaigns/:id/start
//	POST   /dashboard/campaigns/:id/pause
//	GET    /dashboard/accounts
//	POST   /dashboard/accounts
//	PUT    /dashboard/accounts/:id
//	DELETE /dashboard/accounts/:id
//	POST   /dashboard/accounts/:id/test
//	GET    /dashboard/deployments
//	POST   /dashboard/deployments
//	GET    /dashboard/coolify
//	POST   /dashboard/coolify
package console
