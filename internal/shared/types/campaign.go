package types

// CampaignStatus represents campaign lifecycle states
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

// AccountRef is the sender account embedded in a campaign listing
type AccountRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

// Campaign represents an outreach campaign
type Campaign struct {
	ID                 int64          `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	Hashtags           []string       `json:"hashtags"`
	TargetAccounts     []string       `json:"target_accounts"`
	InstagramAccountID *int64         `json:"instagram_account_id,omitempty"`
	InstagramAccount   *AccountRef    `json:"instagram_account,omitempty"`
	Status             CampaignStatus `json:"status"`
	MessagesSent       int            `json:"messages_sent"`
	ResponsesReceived  int            `json:"responses_received"`
	Conversions        int            `json:"conversions"`
	DailyLimit         int            `json:"daily_limit"`
	CreatedAt          string         `json:"created_at"`
}

// CampaignCreate is the payload for creating a campaign
type CampaignCreate struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Hashtags           []string `json:"hashtags"`
	TargetAccounts     []string `json:"target_accounts"`
	InstagramAccountID *int64   `json:"instagram_account_id"`
	DailyLimit         int      `json:"daily_limit"`
}
