package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/outreach-console/internal/client"
	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

// Route templates
const (
	RouteLogin = "/api/auth/login"

	RouteProspects   = "/api/prospects"
	RouteSendMessage = "/api/prospects/{id}/send-message"

	RouteCampaigns     = "/api/campaigns"
	RouteCampaignStart = "/api/campaigns/{id}/start"
	RouteCampaignPause = "/api/campaigns/{id}/pause"

	RouteAccounts    = "/api/instagram-accounts"
	RouteAccount     = "/api/instagram-accounts/{id}"
	RouteAccountTest = "/api/instagram-accounts/{id}/test"

	RouteDashboardStats = "/api/dashboard/stats"
	RoutePerformance    = "/api/analytics/performance"

	RouteDeployments    = "/api/deployments"
	RouteCoolifyConfigs = "/api/coolify-configs"
)

// ErrMalformedToken is returned when a successful login response carries no
// usable access token.
var ErrMalformedToken = errors.New("login response missing access token")

// API is the typed backend surface.
type API struct {
	client *client.Client
}

// New creates an API over c.
func New(c *client.Client) *API {
	return &API{client: c}
}

// Client returns the underlying HTTP client.
func (a *API) Client() *client.Client {
	return a.client
}

// Login exchanges credentials for a bearer token. The request is sent without
// any current credentials and is never retried.
func (a *API) Login(ctx context.Context, username, password string) (types.TokenResponse, error) {
	var token types.TokenResponse
	_, err := a.client.Do(client.Anonymous(ctx), client.Call{
		Method: http.MethodPost,
		Route:  RouteLogin,
		Form: map[string]string{
			"username": username,
			"password": password,
		},
		Result: &token,
	})
	if errors.Is(err, client.ErrDecode) {
		return types.TokenResponse{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if err != nil {
		return types.TokenResponse{}, err
	}
	if strings.TrimSpace(token.AccessToken) == "" {
		return types.TokenResponse{}, ErrMalformedToken
	}
	return token, nil
}

func (a *API) get(ctx context.Context, route string, result interface{}) error {
	_, err := a.client.Do(ctx, client.Call{Method: http.MethodGet, Route: route, Result: result})
	return err
}

func (a *API) post(ctx context.Context, route string, body, result interface{}) error {
	_, err := a.client.Do(ctx, client.Call{Method: http.MethodPost, Route: route, Body: body, Result: result})
	return err
}

func (a *API) postID(ctx context.Context, route string, id int64, result interface{}) error {
	_, err := a.client.Do(ctx, client.Call{
		Method:     http.MethodPost,
		Route:      route,
		PathParams: idParam(id),
		Result:     result,
	})
	return err
}

func idParam(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}
