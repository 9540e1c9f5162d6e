package model

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies one authenticated console user. Key is derived from the
// bearer token; Token is forwarded to the CRM API and never persisted.
type Session struct {
	Key    string
	UserID string
	Token  string
}

// Mutation kinds carried by change events
const (
	ChangeCreated  = "created"
	ChangeUpdated  = "updated"
	ChangeDeleted  = "deleted"
	ChangeAssigned = "assigned"
)

// ChangeEvent tells connected consoles that a record changed so they can
// patch or refetch their copy.
type ChangeEvent struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Resource string    `json:"resource"`
	Action   string    `json:"action"`
	RecordID string    `json:"record_id"`
	UserID   string    `json:"user_id,omitempty"`
	At       time.Time `json:"at"`
}

func NewChangeEvent(resource, action, recordID, userID string) ChangeEvent {
	return ChangeEvent{
		ID:       uuid.New().String(),
		Type:     "record_changed",
		Resource: resource,
		Action:   action,
		RecordID: recordID,
		UserID:   userID,
		At:       time.Now().UTC(),
	}
}
