package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/outreach-console/internal/client"
	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

type recorded struct {
	method string
	path   string
	query  string
	body   string
}

func newTestAPI(t *testing.T, mux *http.ServeMux) (*API, chan recorded) {
	t.Helper()
	requests := make(chan recorded, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests <- recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(body)}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	return New(client.New(client.Options{BaseURL: srv.URL})), requests
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantToken string
		wantErr   func(t *testing.T, err error)
	}{
		{
			name:      "success",
			status:    http.StatusOK,
			body:      `{"access_token":"abc","token_type":"bearer"}`,
			wantToken: "abc",
		},
		{
			name:   "rejected",
			status: http.StatusUnauthorized,
			body:   `{"detail":"Incorrect username or password"}`,
			wantErr: func(t *testing.T, err error) {
				assert.True(t, client.IsStatus(err, http.StatusUnauthorized))
			},
		},
		{
			name:   "missing token",
			status: http.StatusOK,
			body:   `{"token_type":"bearer"}`,
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedToken)
			},
		},
		{
			name:   "blank token",
			status: http.StatusOK,
			body:   `{"access_token":"  "}`,
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedToken)
			},
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>`,
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedToken)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			api, requests := newTestAPI(t, mux)

			token, err := api.Login(context.Background(), "user", "pass")
			req := <-requests
			assert.Equal(t, "password=pass&username=user", req.body)

			if tt.wantErr != nil {
				require.Error(t, err)
				tt.wantErr(t, err)
				assert.Empty(t, token.AccessToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token.AccessToken)
		})
	}
}

func TestListProspects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/prospects", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"prospects": []map[string]interface{}{
				{"id": 1, "username": "coach_anna", "full_name": "Anna", "status": "qualified", "niche": "life"},
			},
			"pages": 3,
			"total": 41,
		})
	})
	api, requests := newTestAPI(t, mux)

	t.Run("filters encoded", func(t *testing.T) {
		page, err := api.ListProspects(context.Background(), ProspectQuery{
			Page:   2,
			Status: types.ProspectQualified,
			Niche:  types.NicheLife,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Pages)
		assert.Equal(t, 41, page.Total)
		require.Len(t, page.Prospects, 1)
		assert.Equal(t, "coach_anna", page.Prospects[0].Username)
		assert.Equal(t, types.ProspectQualified, page.Prospects[0].Status)

		req := <-requests
		assert.Equal(t, "niche=life&page=2&per_page=20&status=qualified", req.query)
	})

	t.Run("defaults", func(t *testing.T) {
		_, err := api.ListProspects(context.Background(), ProspectQuery{})
		require.NoError(t, err)
		req := <-requests
		assert.Equal(t, "page=1&per_page=20", req.query)
	})
}

func TestMutations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/prospects/{id}/send-message", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "sent to " + r.PathValue("id")})
	})
	mux.HandleFunc("POST /api/campaigns/{id}/start", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "started"})
	})
	mux.HandleFunc("POST /api/campaigns/{id}/pause", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "paused"})
	})
	mux.HandleFunc("PUT /api/instagram-accounts/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
	})
	mux.HandleFunc("DELETE /api/instagram-accounts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /api/instagram-accounts/{id}/test", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Account is working"})
	})
	api, requests := newTestAPI(t, mux)
	ctx := context.Background()

	result, err := api.SendMessage(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, "sent to 12", result.Message)
	assert.Equal(t, "/api/prospects/12/send-message", (<-requests).path)

	require.NoError(t, api.StartCampaign(ctx, 3))
	assert.Equal(t, "/api/campaigns/3/start", (<-requests).path)

	require.NoError(t, api.PauseCampaign(ctx, 3))
	assert.Equal(t, "/api/campaigns/3/pause", (<-requests).path)

	require.NoError(t, api.SetAccountActive(ctx, 5, false))
	req := <-requests
	assert.Equal(t, http.MethodPut, req.method)
	assert.JSONEq(t, `{"is_active":false}`, req.body)

	require.NoError(t, api.DeleteAccount(ctx, 5))
	req = <-requests
	assert.Equal(t, http.MethodDelete, req.method)
	assert.Equal(t, "/api/instagram-accounts/5", req.path)

	test, err := api.TestAccount(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Account is working", test.Message)
}

func TestCreatePayloads(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/campaigns", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 9, "name": "Coaches", "status": "active"})
	})
	mux.HandleFunc("POST /api/instagram-accounts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 4, "username": "sender", "is_active": true})
	})
	mux.HandleFunc("POST /api/deployments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 2, "name": "site", "status": "pending"})
	})
	mux.HandleFunc("POST /api/coolify-configs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 1, "name": "prod", "api_url": "https://coolify.example.com"})
	})
	api, requests := newTestAPI(t, mux)
	ctx := context.Background()

	accountID := int64(4)
	campaign, err := api.CreateCampaign(ctx, types.CampaignCreate{
		Name:               "Coaches",
		Hashtags:           []string{"lifecoach", "mindset"},
		TargetAccounts:     []string{},
		InstagramAccountID: &accountID,
		DailyLimit:         25,
	})
	require.NoError(t, err)
	assert.Equal(t, types.CampaignActive, campaign.Status)
	assert.JSONEq(t, `{"name":"Coaches","description":"","hashtags":["lifecoach","mindset"],"target_accounts":[],"instagram_account_id":4,"daily_limit":25}`, (<-requests).body)

	account, err := api.CreateAccount(ctx, types.InstagramAccountCreate{Username: "sender", SessionID: "sess"})
	require.NoError(t, err)
	assert.True(t, account.IsActive)
	assert.JSONEq(t, `{"username":"sender","session_id":"sess","daily_limit":50}`, (<-requests).body)

	deployment, err := api.CreateDeployment(ctx, types.DeploymentCreate{Name: "site", GithubURL: "https://github.com/a/b", CoolifyConfigID: 1})
	require.NoError(t, err)
	assert.Equal(t, types.DeploymentPending, deployment.Status)
	<-requests

	cfg, err := api.CreateCoolifyConfig(ctx, types.CoolifyConfigCreate{Name: "prod", APIURL: "https://coolify.example.com", APIToken: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Name)
	assert.Contains(t, (<-requests).body, `"api_token":"secret"`)
}

func TestReads(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.DashboardStats{TotalProspects: 120, MessagesToday: 7, ResponseRate: 12.5})
	})
	mux.HandleFunc("GET /api/analytics/performance", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.Performance{
			DailyMessages:     []types.DailyMessages{{Date: "2024-05-01", Messages: 10}},
			NicheDistribution: []types.NicheCount{{Niche: "fitness", Count: 4}},
		})
	})
	mux.HandleFunc("GET /api/campaigns", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []types.Campaign{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})
	})
	mux.HandleFunc("GET /api/instagram-accounts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []types.InstagramAccount{{ID: 1, Username: "sender", RemainingToday: 40}})
	})
	mux.HandleFunc("GET /api/deployments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []types.Deployment{{ID: 1, Status: types.DeploymentRunning}})
	})
	mux.HandleFunc("GET /api/coolify-configs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{"id": 3, "name": "prod", "api_url": "https://coolify.example.com", "api_token": "cf-secret"},
		})
	})
	api, _ := newTestAPI(t, mux)
	ctx := context.Background()

	stats, err := api.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, stats.TotalProspects)
	assert.Equal(t, 12.5, stats.ResponseRate)

	perf, err := api.Performance(ctx)
	require.NoError(t, err)
	assert.Len(t, perf.DailyMessages, 1)
	assert.Equal(t, "fitness", perf.NicheDistribution[0].Niche)

	campaigns, err := api.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Len(t, campaigns, 2)

	accounts, err := api.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40, accounts[0].RemainingToday)

	deployments, err := api.ListDeployments(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.DeploymentRunning, deployments[0].Status)

	configs, err := api.ListCoolifyConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "prod", configs[0].Name)
	out, err := json.Marshal(configs)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "cf-secret")
}
