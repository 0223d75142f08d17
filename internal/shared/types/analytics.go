package types

// DashboardStats contains the overview counters
type DashboardStats struct {
	TotalProspects     int     `json:"total_prospects"`
	QualifiedProspects int     `json:"qualified_prospects"`
	MessagesSent       int     `json:"messages_sent"`
	ResponsesReceived  int     `json:"responses_received"`
	MessagesToday      int     `json:"messages_today"`
	RecentProspects    int     `json:"recent_prospects"`
	ResponseRate       float64 `json:"response_rate"`
}

// DailyMessages is one point of the daily message series
type DailyMessages struct {
	Date     string `json:"date"`
	Messages int    `json:"messages"`
}

// NicheCount is one bucket of the niche distribution
type NicheCount struct {
	Niche string `json:"niche"`
	Count int    `json:"count"`
}

// Performance is the analytics payload
type Performance struct {
	DailyMessages     []DailyMessages `json:"daily_messages"`
	NicheDistribution []NicheCount    `json:"niche_distribution"`
}
