package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PermissionSnapshot is the persisted mirror of a session's permission set.
type PermissionSnapshot struct {
	ID          uuid.UUID                         `gorm:"type:uuid;primaryKey" json:"id"`
	SessionKey  string                            `gorm:"type:varchar(64);uniqueIndex;not null" json:"session_key"`
	UserID      string                            `gorm:"type:varchar(255);index" json:"user_id"`
	Permissions datatypes.JSONType[PermissionSet] `gorm:"type:jsonb" json:"permissions"`
	CreatedAt   time.Time                         `json:"created_at"`
	UpdatedAt   time.Time                         `gorm:"index" json:"updated_at"`
}

func (PermissionSnapshot) TableName() string {
	return "permission_snapshots"
}

func (s *PermissionSnapshot) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
