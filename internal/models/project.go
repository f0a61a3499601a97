package models

import "time"

// Project scopes all AI sessions to one working directory.
// ProjectID is derived deterministically from the canonical path, so the
// same directory always resolves to the same row.
type Project struct {
	ProjectID    string    `gorm:"primaryKey;size:64" json:"projectId"`
	ProjectPath  string    `gorm:"size:1024;not null" json:"projectPath"`
	ProjectName  string    `gorm:"size:255" json:"projectName"`
	CreatedAt    time.Time `json:"createdAt"`
	LastAccessed time.Time `gorm:"index:idx_projects_last_accessed" json:"lastAccessed"`

	// Declared on the owning side so the foreign keys land on the child
	// tables and cascade project deletes.
	AISessions  []AISession  `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	ClearEvents []ClearEvent `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}
