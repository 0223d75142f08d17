// Package session owns the console's authentication state.
//
// The Manager is the single source of truth for whether the operator is
// signed in. It holds the bearer token in memory, is the only writer of the
// persisted copy, and supplies the Authorization header to the backend client
// through the client.Authorizer interface it implements.
//
// State Machine:
//
//	Initializing ──Restore(found)──────▶ Authenticated
//	Initializing ──Restore(absent)─────▶ Unauthenticated
//	Unauthenticated ──Login(success)───▶ Authenticated
//	Authenticated ──Logout────────────▶ Unauthenticated
//
// While Initializing the authorization state is indeterminate; callers gate
// on IsLoading before rendering either the sign-in or the dashboard view.
//
// Login reports a tagged Outcome so callers can tell rejected credentials
// from an unreachable backend. Logout always succeeds locally.
//
// Example Usage:
//
//	mgr := session.NewManager(api, store, session.Options{Logger: log})
//	c.SetAuthorizer(mgr)
//	c.OnUnauthorized(mgr.HandleUnauthorized)
//	_ = mgr.Restore(ctx)
//	if out := mgr.Login(ctx, "admin", "secret"); !out.OK() {
//	    fmt.Println(out.Message())
//	}
package session
