package backend

import (
	"context"
	"net/http"

	"github.com/GriffinCanCode/outreach-console/internal/client"
	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

// ListAccounts returns all sender accounts.
func (a *API) ListAccounts(ctx context.Context) ([]types.InstagramAccount, error) {
	var accounts []types.InstagramAccount
	err := a.get(ctx, RouteAccounts, &accounts)
	return accounts, err
}

// CreateAccount registers a sender account.
func (a *API) CreateAccount(ctx context.Context, in types.InstagramAccountCreate) (types.InstagramAccount, error) {
	if in.DailyLimit <= 0 {
		in.DailyLimit = types.DefaultDailyLimit
	}
	var out types.InstagramAccount
	err := a.post(ctx, RouteAccounts, in, &out)
	return out, err
}

// UpdateAccount applies a partial update.
func (a *API) UpdateAccount(ctx context.Context, id int64, in types.InstagramAccountUpdate) error {
	_, err := a.client.Do(ctx, client.Call{
		Method:     http.MethodPut,
		Route:      RouteAccount,
		PathParams: idParam(id),
		Body:       in,
	})
	return err
}

// SetAccountActive toggles whether an account is used for sending.
func (a *API) SetAccountActive(ctx context.Context, id int64, active bool) error {
	return a.UpdateAccount(ctx, id, types.InstagramAccountUpdate{IsActive: &active})
}

// DeleteAccount removes a sender account.
func (a *API) DeleteAccount(ctx context.Context, id int64) error {
	_, err := a.client.Do(ctx, client.Call{
		Method:     http.MethodDelete,
		Route:      RouteAccount,
		PathParams: idParam(id),
	})
	return err
}

// TestAccount checks that the account's session still works.
func (a *API) TestAccount(ctx context.Context, id int64) (types.AccountTestResult, error) {
	var result types.AccountTestResult
	err := a.postID(ctx, RouteAccountTest, id, &result)
	return result, err
}
