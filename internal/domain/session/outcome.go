package session

import (
	"errors"
	"net/http"

	"github.com/GriffinCanCode/outreach-console/internal/backend"
	"github.com/GriffinCanCode/outreach-console/internal/client"
)

// OutcomeKind classifies a login attempt
type OutcomeKind int

const (
	OutcomeSuccess   OutcomeKind = iota
	OutcomeRejected              // backend answered with a non-2xx status
	OutcomeTransport             // backend unreachable, timed out or circuit open
	OutcomeMalformed             // 2xx without a usable access token
	OutcomeStorage               // token could not be persisted
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRejected:
		return "rejected"
	case OutcomeTransport:
		return "transport"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Outcome is the result of a login attempt.
type Outcome struct {
	Kind   OutcomeKind
	Status int // HTTP status for OutcomeRejected
	Err    error
}

// OK reports whether the login succeeded.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// Message is a short operator-facing description.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeSuccess:
		return "Signed in"
	case OutcomeRejected:
		if o.Status == http.StatusUnauthorized || o.Status == http.StatusForbidden {
			return "Invalid username or password"
		}
		return "Sign-in rejected by the server"
	case OutcomeTransport:
		return "Backend unreachable"
	case OutcomeMalformed:
		return "Unexpected response from the server"
	case OutcomeStorage:
		return "Could not save the session"
	default:
		return "Sign-in failed"
	}
}

func classify(err error) Outcome {
	var apiErr *client.APIError
	switch {
	case err == nil:
		return Outcome{Kind: OutcomeSuccess}
	case errors.As(err, &apiErr):
		return Outcome{Kind: OutcomeRejected, Status: apiErr.Status, Err: err}
	case errors.Is(err, backend.ErrMalformedToken):
		return Outcome{Kind: OutcomeMalformed, Err: err}
	default:
		return Outcome{Kind: OutcomeTransport, Err: err}
	}
}
