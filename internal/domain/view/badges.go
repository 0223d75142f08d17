package view

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

// Tone is a badge color family
type Tone string

const (
	ToneGray   Tone = "gray"
	ToneBlue   Tone = "blue"
	ToneYellow Tone = "yellow"
	ToneGreen  Tone = "green"
	TonePurple Tone = "purple"
	ToneRed    Tone = "red"
	ToneOrange Tone = "orange"
)

// Badge is a labelled, colored marker
type Badge struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

var prospectTones = map[string]Tone{
	string(types.ProspectDiscovered): ToneGray,
	string(types.ProspectQualified):  ToneBlue,
	string(types.ProspectMessaged):   ToneYellow,
	string(types.ProspectResponded):  ToneGreen,
	string(types.ProspectConverted):  TonePurple,
	string(types.ProspectRejected):   ToneRed,
}

var nicheTones = map[string]Tone{
	types.NicheBusiness: ToneBlue,
	types.NicheLife:     ToneGreen,
	types.NicheFitness:  ToneOrange,
	types.NicheMindset:  TonePurple,
	types.NicheGeneral:  ToneGray,
}

var campaignTones = map[string]Tone{
	string(types.CampaignActive):    ToneGreen,
	string(types.CampaignPaused):    ToneYellow,
	string(types.CampaignCompleted): ToneBlue,
}

var deploymentTones = map[string]Tone{
	string(types.DeploymentPending):   ToneGray,
	string(types.DeploymentBuilding):  ToneBlue,
	string(types.DeploymentDeploying): ToneYellow,
	string(types.DeploymentRunning):   ToneGreen,
	string(types.DeploymentFailed):    ToneRed,
	string(types.DeploymentStopped):   ToneGray,
}

// StatusBadge labels a prospect status; unknown values take the discovered tone.
func StatusBadge(status types.ProspectStatus) Badge {
	return badge(string(status), prospectTones, string(types.ProspectDiscovered))
}

// NicheBadge labels a niche; unknown values take the general tone.
func NicheBadge(niche string) Badge {
	return badge(niche, nicheTones, types.NicheGeneral)
}

// CampaignBadge labels a campaign status; unknown values take the paused tone.
func CampaignBadge(status types.CampaignStatus) Badge {
	return badge(string(status), campaignTones, string(types.CampaignPaused))
}

// DeploymentBadge labels a deployment status; unknown values take the pending tone.
func DeploymentBadge(status types.DeploymentStatus) Badge {
	return badge(string(status), deploymentTones, string(types.DeploymentPending))
}

// The label always reflects the raw value; only the tone falls back.
func badge(value string, tones map[string]Tone, fallback string) Badge {
	tone, ok := tones[value]
	if !ok {
		tone = tones[fallback]
	}
	return Badge{Label: Capitalize(value), Tone: tone}
}

// Capitalize upper-cases the first letter.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// UsageBadge rates an account's daily usage: red from 90%, yellow from 70%.
func UsageBadge(sent, limit int) Badge {
	if limit <= 0 {
		return Badge{Label: "100%", Tone: ToneRed}
	}
	pct := sent * 100 / limit
	tone := ToneGreen
	switch {
	case pct >= 90:
		tone = ToneRed
	case pct >= 70:
		tone = ToneYellow
	}
	return Badge{Label: strconv.Itoa(pct) + "%", Tone: tone}
}

// AccountBadge summarises an account's health.
func AccountBadge(a types.InstagramAccount) Badge {
	if !a.IsActive {
		return Badge{Label: "Inactive", Tone: ToneGray}
	}
	switch a.AccountStatus {
	case "active":
		return Badge{Label: "Active", Tone: ToneGreen}
	case "limited":
		return Badge{Label: "Limited", Tone: ToneYellow}
	case "suspended":
		return Badge{Label: "Suspended", Tone: ToneRed}
	default:
		return Badge{Label: Capitalize(a.AccountStatus), Tone: ToneGray}
	}
}
