package models

import "time"

// AISessionInfo summarizes one provider's session for status display.
type AISessionInfo struct {
	AIName     string     `json:"aiName"`
	SessionID  string     `json:"sessionId"`
	Active     bool       `json:"active"`
	LastActive *time.Time `json:"lastActive,omitempty"`
}

// ProjectInfo aggregates a project's sessions and clear history.
type ProjectInfo struct {
	ProjectID    string          `json:"projectId"`
	ProjectPath  string          `json:"projectPath"`
	ProjectName  string          `json:"projectName"`
	CreatedAt    time.Time       `json:"createdAt"`
	LastAccessed time.Time       `json:"lastAccessed"`
	TotalClears  int64           `json:"totalClears"`
	AISessions   []AISessionInfo `json:"aiSessions"`
}

// ProjectListing is one row of the recent-projects overview.
type ProjectListing struct {
	ProjectID    string    `json:"projectId"`
	ProjectPath  string    `json:"projectPath"`
	ProjectName  string    `json:"projectName"`
	LastAccessed time.Time `json:"lastAccessed"`
	AICount      int64     `json:"aiCount"`
}

// Context is a conversation plus its full ordered message history.
type Context struct {
	SessionID string    `json:"sessionId"`
	Metadata  string    `json:"metadata,omitempty"`
	Messages  []Message `json:"messages"`
}
