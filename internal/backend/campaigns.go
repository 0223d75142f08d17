package backend

import (
	"context"

	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

// ListCampaigns returns all campaigns.
func (a *API) ListCampaigns(ctx context.Context) ([]types.Campaign, error) {
	var campaigns []types.Campaign
	err := a.get(ctx, RouteCampaigns, &campaigns)
	return campaigns, err
}

// CreateCampaign creates a campaign and returns it as stored.
func (a *API) CreateCampaign(ctx context.Context, in types.CampaignCreate) (types.Campaign, error) {
	var out types.Campaign
	err := a.post(ctx, RouteCampaigns, in, &out)
	return out, err
}

// StartCampaign activates a campaign.
func (a *API) StartCampaign(ctx context.Context, id int64) error {
	return a.postID(ctx, RouteCampaignStart, id, nil)
}

// PauseCampaign pauses a campaign.
func (a *API) PauseCampaign(ctx context.Context, id int64) error {
	return a.postID(ctx, RouteCampaignPause, id, nil)
}
