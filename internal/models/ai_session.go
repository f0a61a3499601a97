package models

import "time"

// AISession binds one provider conversation to one project. The composite
// unique index is what makes concurrent create calls converge on a single
// session id.
type AISession struct {
	SessionID    string    `gorm:"primaryKey;size:36" json:"sessionId"`
	ProjectID    string    `gorm:"size:64;not null;index:idx_ai_sessions_project;uniqueIndex:idx_ai_sessions_project_ai" json:"projectId"`
	AIName       string    `gorm:"size:64;not null;uniqueIndex:idx_ai_sessions_project_ai" json:"aiName"`
	CreatedAt    time.Time `json:"createdAt"`
	LastAccessed time.Time `json:"lastAccessed"`
	Cleared      bool      `gorm:"not null;default:false" json:"cleared"`
}
