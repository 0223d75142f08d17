/*
Package backend provides typed calls against the outreach backend REST API.

Every call goes through a shared client.Client, so credentials, retries,
rate limiting and the circuit breaker apply uniformly. HTTP failures surface
as *client.APIError; use client.IsStatus or errors.As to inspect them.

Endpoints:
  - Auth: POST /api/auth/login (form-encoded)
  - Prospects: list (paged, filtered), send message
  - Campaigns: list, create, start, pause
  - Instagram accounts: list, create, update, delete, test
  - Dashboard stats and analytics performance
  - Deployments and Coolify configs: list, create

Example:

	api := backend.New(c)
	page, err := api.ListProspects(ctx, backend.ProspectQuery{Page: 1, Status: types.ProspectQualified})
*/
package backend
