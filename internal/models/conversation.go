package models

import "time"

// Conversation is the time-ordered message log for one session. The row is
// created lazily when the first message for a session id is stored.
type Conversation struct {
	SessionID string    `gorm:"primaryKey;size:36" json:"sessionId"`
	UserID    string    `gorm:"size:255" json:"userId,omitempty"`
	Metadata  string    `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Declared on the owning side so the foreign key lands on messages and
	// pruning a conversation cascades to them.
	Messages []Message `gorm:"foreignKey:SessionID;references:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

// Message is a single immutable turn. Messages are append-only; pruning a
// conversation cascades to its messages.
type Message struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"size:36;not null;index:idx_messages_session_id" json:"sessionId"`
	Role      string    `gorm:"size:32;not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Metadata  string    `gorm:"type:text" json:"metadata,omitempty"`
	Timestamp time.Time `gorm:"index:idx_messages_timestamp" json:"timestamp"`
}

// Roles stored on messages. Providers may define additional system roles;
// the store does not restrict the set.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)
