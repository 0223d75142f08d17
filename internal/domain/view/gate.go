package view

import "github.com/GriffinCanCode/outreach-console/internal/domain/session"

// View is a top-level screen
type View string

const (
	ViewLoading   View = "loading"
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
)

// Gate picks the view for a snapshot. While the session is loading neither
// the login nor the dashboard view may be shown.
func Gate(snap session.Snapshot) View {
	switch {
	case snap.Loading || snap.State == session.StateInitializing:
		return ViewLoading
	case snap.Authenticated():
		return ViewDashboard
	default:
		return ViewLogin
	}
}
