package repository

import (
	"context"
	"errors"
	"time"

	"crm-console/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type snapshotMirror struct {
	db *gorm.DB
}

// NewSnapshotMirror stores permission mirrors in the permission_snapshots table.
func NewSnapshotMirror(db *gorm.DB) PermissionMirror {
	return &snapshotMirror{db}
}

func (r *snapshotMirror) Load(ctx context.Context, sessionKey string) (model.PermissionSet, bool, error) {
	var snap model.PermissionSnapshot
	err := r.db.WithContext(ctx).Where("session_key = ?", sessionKey).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	set := snap.Permissions.Data()
	if set == nil {
		set = model.PermissionSet{}
	}
	return set, true, nil
}

// Save upserts on session_key so a refetch overwrites the previous mirror.
func (r *snapshotMirror) Save(ctx context.Context, sessionKey, userID string, set model.PermissionSet) error {
	snap := model.PermissionSnapshot{
		SessionKey:  sessionKey,
		UserID:      userID,
		Permissions: datatypes.NewJSONType(set),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "permissions", "updated_at"}),
	}).Create(&snap).Error
}

func (r *snapshotMirror) Delete(ctx context.Context, sessionKey string) error {
	return r.db.WithContext(ctx).Where("session_key = ?", sessionKey).Delete(&model.PermissionSnapshot{}).Error
}

func (r *snapshotMirror) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.PermissionSnapshot{})
	return res.RowsAffected, res.Error
}

func (r *snapshotMirror) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&model.PermissionSnapshot{})
	return res.RowsAffected, res.Error
}
