package repository

import (
	"context"
	"fmt"

	"crm-console/internal/config"
	"crm-console/internal/model"
	"crm-console/pkg/database"

	"github.com/redis/go-redis/v9"
)

// OpenMirror builds the mirror selected by cfg.Mirror.Driver. The returned
// close func releases the underlying connection.
func OpenMirror(ctx context.Context, cfg *config.Config) (PermissionMirror, func() error, error) {
	switch cfg.Mirror.Driver {
	case config.MirrorPostgres:
		db, err := database.ConnectDB()
		if err != nil {
			return nil, nil, err
		}
		if err := db.AutoMigrate(&model.PermissionSnapshot{}); err != nil {
			return nil, nil, fmt.Errorf("migrate permission_snapshots: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return NewSnapshotMirror(db), sqlDB.Close, nil

	case config.MirrorRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedisMirror(client, cfg.Mirror.Retention), client.Close, nil

	default:
		return NewMemoryMirror(), func() error { return nil }, nil
	}
}
