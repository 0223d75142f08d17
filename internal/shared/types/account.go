package types

// DefaultDailyLimit is the backend's default per-account and per-campaign
// message cap.
const DefaultDailyLimit = 50

// InstagramAccount represents a sender account
type InstagramAccount struct {
	ID                int64   `json:"id"`
	Username          string  `json:"username"`
	IsActive          bool    `json:"is_active"`
	DailyMessagesSent int     `json:"daily_messages_sent"`
	DailyLimit        int     `json:"daily_limit"`
	AccountStatus     string  `json:"account_status"`
	LastActivity      *string `json:"last_activity"`
	RemainingToday    int     `json:"remaining_today"`
	Notes             string  `json:"notes,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

// InstagramAccountCreate is the payload for registering a sender account
type InstagramAccountCreate struct {
	Username   string `json:"username"`
	SessionID  string `json:"session_id"`
	DailyLimit int    `json:"daily_limit"`
	Notes      string `json:"notes,omitempty"`
}

// InstagramAccountUpdate is a partial update; nil fields are left unchanged
type InstagramAccountUpdate struct {
	IsActive      *bool   `json:"is_active,omitempty"`
	DailyLimit    *int    `json:"daily_limit,omitempty"`
	SessionID     *string `json:"session_id,omitempty"`
	AccountStatus *string `json:"account_status,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// AccountTestResult is the outcome of a connectivity test
type AccountTestResult struct {
	Message string `json:"message"`
}
