package registry

type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusCreated Status = "created"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusSuccess, StatusCreated:
		return true
	}
	return false
}

const (
	LastRunNever   = "Never"
	LastRunJustNow = "Just now"
	DurationZero   = "0s"
)

type Repository struct {
	Id       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Private  bool   `json:"private" yaml:"private"`
	Language string `json:"language" yaml:"language"`
	Stars    int    `json:"stars" yaml:"stars"`
}

// Name, Repo and Trigger hold whatever the client sent on create; seeded
// workflows carry strings. Repo is not checked against the seeded
// repositories.
type Workflow struct {
	Id       int    `json:"id" yaml:"id"`
	Name     any    `json:"name" yaml:"name"`
	Status   Status `json:"status" yaml:"status"`
	Repo     any    `json:"repo" yaml:"repo"`
	LastRun  string `json:"last_run" yaml:"last_run"`
	Duration string `json:"duration" yaml:"duration"`
	Trigger  any    `json:"trigger,omitempty" yaml:"trigger,omitempty"`
}

// WorkflowInput is the decoded body of a create request. Only the presence
// of a key matters; its value, null included, is stored unchanged.
type WorkflowInput map[string]any

type Stats struct {
	ActiveRepos      int `json:"active_repos" yaml:"active_repos"`
	WorkflowsRunning int `json:"workflows_running" yaml:"workflows_running"`
	TeamMembers      int `json:"team_members" yaml:"team_members"`
	SecurityScore    int `json:"security_score" yaml:"security_score"`
}

type Framework struct {
	Name      string `json:"name" yaml:"name"`
	Status    string `json:"status" yaml:"status"`
	LastCheck string `json:"last_check" yaml:"last_check"`
}

type SecurityIssue struct {
	Severity string `json:"severity" yaml:"severity"`
	Count    int    `json:"count" yaml:"count"`
}

type Compliance struct {
	SecurityScore        int             `json:"security_score" yaml:"security_score"`
	ComplianceFrameworks []Framework     `json:"compliance_frameworks" yaml:"compliance_frameworks"`
	SecurityIssues       []SecurityIssue `json:"security_issues" yaml:"security_issues"`
}

type Connection struct {
	Username    string `json:"username" yaml:"username"`
	ReposCount  int    `json:"repos_count" yaml:"repos_count"`
	ConnectedAt string `json:"connected_at" yaml:"connected_at"`
}
