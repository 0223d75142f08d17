package view

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

var (
	// ErrNameRequired is returned when a form has no name
	ErrNameRequired = errors.New("name is required")
	// ErrInvalidAccountID is returned for a non-numeric account selection
	ErrInvalidAccountID = errors.New("invalid instagram account id")
)

// CampaignForm is the raw input of the create-campaign form.
type CampaignForm struct {
	Name               string `json:"name" form:"name"`
	Description        string `json:"description" form:"description"`
	Hashtags           string `json:"hashtags" form:"hashtags"`
	TargetAccounts     string `json:"target_accounts" form:"target_accounts"`
	InstagramAccountID string `json:"instagram_account_id" form:"instagram_account_id"`
	DailyLimit         int    `json:"daily_limit" form:"daily_limit"`
}

// ParseCampaignForm converts form input to a create payload. Comma lists are
// split, trimmed and emptied entries dropped; a blank account selection means
// no account.
func ParseCampaignForm(form CampaignForm) (types.CampaignCreate, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return types.CampaignCreate{}, ErrNameRequired
	}

	out := types.CampaignCreate{
		Name:           name,
		Description:    strings.TrimSpace(form.Description),
		Hashtags:       SplitList(form.Hashtags),
		TargetAccounts: SplitList(form.TargetAccounts),
		DailyLimit:     form.DailyLimit,
	}
	if out.DailyLimit <= 0 {
		out.DailyLimit = types.DefaultDailyLimit
	}

	if raw := strings.TrimSpace(form.InstagramAccountID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return types.CampaignCreate{}, fmt.Errorf("%w: %q", ErrInvalidAccountID, raw)
		}
		out.InstagramAccountID = &id
	}
	return out, nil
}

// SplitList splits a comma-separated list. The result is never nil.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RepoName shortens a GitHub URL to owner/repo, returning the input when it
// does not look like one.
func RepoName(githubURL string) string {
	u, err := url.Parse(githubURL)
	if err != nil || u.Host == "" {
		return githubURL
	}
	var parts []string
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return githubURL
}
