package models

import "time"

// ClearEvent is the audit record of an explicit context reset. Rows are
// append-only and removed only by the project cascade.
type ClearEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID string    `gorm:"size:64;not null;index" json:"projectId"`
	AIName    string    `gorm:"size:64" json:"aiName"`
	ClearedAt time.Time `json:"clearedAt"`
	ClearedBy string    `gorm:"size:255" json:"clearedBy"`
}
