package types

// ProspectStatus represents a prospect's position in the outreach funnel
type ProspectStatus string

const (
	ProspectDiscovered ProspectStatus = "discovered"
	ProspectQualified  ProspectStatus = "qualified"
	ProspectMessaged   ProspectStatus = "messaged"
	ProspectResponded  ProspectStatus = "responded"
	ProspectConverted  ProspectStatus = "converted"
	ProspectRejected   ProspectStatus = "rejected"
)

// ProspectStatuses lists every known prospect status in funnel order
var ProspectStatuses = []ProspectStatus{
	ProspectDiscovered,
	ProspectQualified,
	ProspectMessaged,
	ProspectResponded,
	ProspectConverted,
	ProspectRejected,
}

// Valid reports whether s is a known status
func (s ProspectStatus) Valid() bool {
	for _, known := range ProspectStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Niches the backend classifies prospects into
const (
	NicheBusiness = "business"
	NicheLife     = "life"
	NicheFitness  = "fitness"
	NicheMindset  = "mindset"
	NicheGeneral  = "general"
)

// Prospect represents a discovered Instagram profile
type Prospect struct {
	ID               int64          `json:"id"`
	Username         string         `json:"username"`
	FullName         string         `json:"full_name"`
	Bio              string         `json:"bio"`
	Followers        int            `json:"followers"`
	Following        int            `json:"following"`
	PostsCount       *int           `json:"posts_count,omitempty"`
	EngagementRate   float64        `json:"engagement_rate"`
	CoachScore       float64        `json:"coach_score"`
	ValueScore       float64        `json:"value_score"`
	Niche            string         `json:"niche"`
	Status           ProspectStatus `json:"status"`
	DMSent           bool           `json:"dm_sent"`
	ResponseReceived bool           `json:"response_received"`
	ProfileURL       string         `json:"profile_url,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	CreatedAt        string         `json:"created_at"`
}

// ProspectPage is one page of the server-side prospect listing
type ProspectPage struct {
	Prospects []Prospect `json:"prospects"`
	Pages     int        `json:"pages"`
	Total     int        `json:"total"`
}

// MessageResult is the backend's reply to a send-message request
type MessageResult struct {
	Message string `json:"message"`
}
