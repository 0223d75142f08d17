package backend

import (
	"context"

	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

// ListDeployments returns all deployments.
func (a *API) ListDeployments(ctx context.Context) ([]types.Deployment, error) {
	var deployments []types.Deployment
	err := a.get(ctx, RouteDeployments, &deployments)
	return deployments, err
}

// CreateDeployment starts a deployment.
func (a *API) CreateDeployment(ctx context.Context, in types.DeploymentCreate) (types.Deployment, error) {
	var out types.Deployment
	err := a.post(ctx, RouteDeployments, in, &out)
	return out, err
}

// ListCoolifyConfigs returns all Coolify endpoints.
func (a *API) ListCoolifyConfigs(ctx context.Context) ([]types.CoolifyConfig, error) {
	var configs []types.CoolifyConfig
	err := a.get(ctx, RouteCoolifyConfigs, &configs)
	return configs, err
}

// CreateCoolifyConfig registers a Coolify endpoint.
func (a *API) CreateCoolifyConfig(ctx context.Context, in types.CoolifyConfigCreate) (types.CoolifyConfig, error) {
	var out types.CoolifyConfig
	err := a.post(ctx, RouteCoolifyConfigs, in, &out)
	return out, err
}
