package console

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/outreach-console/internal/domain/analytics"
	"github.com/GriffinCanCode/outreach-console/internal/domain/view"
	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

type prospectRow struct {
	types.Prospect
	StatusBadge view.Badge `json:"status_badge"`
	NicheBadge  view.Badge `json:"niche_badge"`
}

type prospectsResponse struct {
	Prospects []prospectRow `json:"prospects"`
	Page      int           `json:"page"`
	PerPage   int           `json:"per_page"`
	Pages     int           `json:"pages"`
	Total     int           `json:"total"`
	PrevPage  int           `json:"prev_page"`
	NextPage  int           `json:"next_page"`
}

type campaignRow struct {
	types.Campaign
	Badge view.Badge `json:"badge"`
}

type accountRow struct {
	types.InstagramAccount
	Badge view.Badge `json:"badge"`
	Usage view.Badge `json:"usage"`
}

type deploymentRow struct {
	types.Deployment
	Badge view.Badge `json:"badge"`
	Repo  string     `json:"repo"`
}

type analyticsResponse struct {
	Performance types.Performance `json:"performance"`
	Summary     analytics.Summary `json:"summary"`
}

func (s *Server) stats(c *gin.Context) {
	stats, err := s.api.DashboardStats(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) analytics(c *gin.Context) {
	perf, err := s.api.Performance(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analyticsResponse{Performance: perf, Summary: analytics.Summarize(perf)})
}

// prospectFilter reads the filter from the query string.
func prospectFilter(c *gin.Context) (view.ProspectFilter, bool) {
	f := view.NewProspectFilter()

	for key, dst := range map[string]*int{"page": &f.Page, "per_page": &f.PerPage} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, "invalid "+key)
			return f, false
		}
		*dst = n
	}

	status := types.ProspectStatus(strings.TrimSpace(c.Query("status")))
	if status != "" && !status.Valid() {
		badRequest(c, "unknown status "+strconv.Quote(string(status)))
		return f, false
	}
	f.Status = status
	f.Niche = strings.TrimSpace(c.Query("niche"))
	f.Search = c.Query("search")
	return f, true
}

func (s *Server) listProspects(c *gin.Context) {
	f, ok := prospectFilter(c)
	if !ok {
		return
	}
	q := f.Query()

	page, err := s.api.ListProspects(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}

	visible := f.Apply(s.sanitizer.Prospects(page.Prospects))
	rows := make([]prospectRow, 0, len(visible))
	for _, p := range visible {
		rows = append(rows, prospectRow{
			Prospect:    p,
			StatusBadge: view.StatusBadge(p.Status),
			NicheBadge:  view.NicheBadge(p.Niche),
		})
	}

	c.JSON(http.StatusOK, prospectsResponse{
		Prospects: rows,
		Page:      q.Page,
		PerPage:   q.PerPage,
		Pages:     page.Pages,
		Total:     page.Total,
		PrevPage:  f.Prev().Page,
		NextPage:  f.Next(page.Pages).Page,
	})
}

func (s *Server) sendMessage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	res, err := s.api.SendMessage(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) listCampaigns(c *gin.Context) {
	campaigns, err := s.api.ListCampaigns(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	rows := make([]campaignRow, 0, len(campaigns))
	for _, cp := range s.sanitizer.Campaigns(campaigns) {
		rows = append(rows, campaignRow{Campaign: cp, Badge: view.CampaignBadge(cp.Status)})
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) createCampaign(c *gin.Context) {
	var form view.CampaignForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err.Error())
		return
	}
	in, err := view.ParseCampaignForm(form)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	created, err := s.api.CreateCampaign(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) startCampaign(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.api.StartCampaign(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) pauseCampaign(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.api.PauseCampaign(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listAccounts(c *gin.Context) {
	accounts, err := s.api.ListAccounts(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	rows := make([]accountRow, 0, len(accounts))
	for _, a := range s.sanitizer.Accounts(accounts) {
		rows = append(rows, accountRow{
			InstagramAccount: a,
			Badge:            view.AccountBadge(a),
			Usage:            view.UsageBadge(a.DailyMessagesSent, a.DailyLimit),
		})
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) createAccount(c *gin.Context) {
	var in types.InstagramAccountCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	in.Username = strings.TrimPrefix(strings.TrimSpace(in.Username), "@")
	if in.Username == "" || strings.TrimSpace(in.SessionID) == "" {
		badRequest(c, "username and session_id are required")
		return
	}

	created, err := s.api.CreateAccount(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateAccount(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in types.InstagramAccountUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := s.api.UpdateAccount(c.Request.Context(), id, in); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteAccount(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.api.DeleteAccount(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) testAccount(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	res, err := s.api.TestAccount(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) listDeployments(c *gin.Context) {
	deployments, err := s.api.ListDeployments(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	rows := make([]deploymentRow, 0, len(deployments))
	for _, d := range deployments {
		d.Name = s.sanitizer.Text(d.Name)
		rows = append(rows, deploymentRow{
			Deployment: d,
			Badge:      view.DeploymentBadge(d.Status),
			Repo:       view.RepoName(d.GithubURL),
		})
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) createDeployment(c *gin.Context) {
	var in types.DeploymentCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.GithubURL) == "" || in.CoolifyConfigID <= 0 {
		badRequest(c, "name, github_url and coolify_config_id are required")
		return
	}

	created, err := s.api.CreateDeployment(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listCoolifyConfigs(c *gin.Context) {
	configs, err := s.api.ListCoolifyConfigs(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, configs)
}

func (s *Server) createCoolifyConfig(c *gin.Context) {
	var in types.CoolifyConfigCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.APIURL) == "" || in.APIToken == "" {
		badRequest(c, "name, api_url and api_token are required")
		return
	}

	created, err := s.api.CreateCoolifyConfig(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
