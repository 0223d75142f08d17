package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/GriffinCanCode/outreach-console/internal/client"
	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

// DefaultPerPage is the page size the dashboard requests.
const DefaultPerPage = 20

// ProspectQuery selects a page of prospects. Empty filters are omitted.
type ProspectQuery struct {
	Page    int
	PerPage int
	Status  types.ProspectStatus
	Niche   string
}

// Values encodes the query string.
func (q ProspectQuery) Values() url.Values {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("per_page", strconv.Itoa(perPage))
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Niche != "" {
		v.Set("niche", q.Niche)
	}
	return v
}

// ListProspects fetches one page of prospects.
func (a *API) ListProspects(ctx context.Context, q ProspectQuery) (types.ProspectPage, error) {
	var page types.ProspectPage
	_, err := a.client.Do(ctx, client.Call{
		Method: http.MethodGet,
		Route:  RouteProspects,
		Query:  q.Values(),
		Result: &page,
	})
	return page, err
}

// SendMessage asks the backend to DM a prospect.
func (a *API) SendMessage(ctx context.Context, prospectID int64) (types.MessageResult, error) {
	var result types.MessageResult
	err := a.postID(ctx, RouteSendMessage, prospectID, &result)
	return result, err
}
