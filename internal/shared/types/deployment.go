package types

// DeploymentStatus represents deployment lifecycle states
type DeploymentStatus string

const (
	DeploymentPending   DeploymentStatus = "pending"
	DeploymentBuilding  DeploymentStatus = "building"
	DeploymentDeploying DeploymentStatus = "deploying"
	DeploymentRunning   DeploymentStatus = "running"
	DeploymentFailed    DeploymentStatus = "failed"
	DeploymentStopped   DeploymentStatus = "stopped"
)

// ConfigRef is the Coolify config embedded in a deployment listing
type ConfigRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Deployment represents an application deployed through Coolify
type Deployment struct {
	ID                   int64            `json:"id"`
	Name                 string           `json:"name"`
	GithubURL            string           `json:"github_url"`
	ProjectType          string           `json:"project_type"`
	Status               DeploymentStatus `json:"status"`
	DeploymentURL        *string          `json:"deployment_url,omitempty"`
	CoolifyConfigID      int64            `json:"coolify_config_id"`
	CoolifyConfig        *ConfigRef       `json:"coolify_config,omitempty"`
	EnvironmentVariables string           `json:"environment_variables,omitempty"`
	CreatedAt            string           `json:"created_at"`
}

// DeploymentCreate is the payload for starting a deployment
type DeploymentCreate struct {
	Name                 string `json:"name"`
	GithubURL            string `json:"github_url"`
	CoolifyConfigID      int64  `json:"coolify_config_id"`
	EnvironmentVariables string `json:"environment_variables"`
}

// CoolifyConfig represents a Coolify API endpoint. The backend echoes the
// API token back; it is not decoded so the console never holds or prints it.
type CoolifyConfig struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	APIURL    string `json:"api_url"`
	TeamID    string `json:"team_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

// CoolifyConfigCreate is the payload for registering a Coolify endpoint
type CoolifyConfigCreate struct {
	Name     string `json:"name"`
	APIURL   string `json:"api_url"`
	APIToken string `json:"api_token"`
	TeamID   string `json:"team_id,omitempty"`
}
