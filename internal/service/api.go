package service

import (
	"context"
	"encoding/json"

	"crm-console/internal/model"
)

// PermissionAPI fetches the signed-in user's grants from the CRM API.
type PermissionAPI interface {
	Permissions(ctx context.Context, token string) (model.PermissionSet, error)
}

// RecordAPI is the remote half of the mutation gateway plus collection reads.
// A nil record from a mutation means the API only acknowledged the call.
type RecordAPI interface {
	List(ctx context.Context, token, path string) ([]json.RawMessage, error)
	Create(ctx context.Context, token, path string, record interface{}) (json.RawMessage, error)
	Update(ctx context.Context, token, path, id string, patch map[string]interface{}) (json.RawMessage, error)
	Delete(ctx context.Context, token, path, id string) error
	Reassign(ctx context.Context, token, path, id, ownerID string) (json.RawMessage, error)
}

// ChangeNotifier publishes record change events to connected consoles.
type ChangeNotifier interface {
	Notify(event model.ChangeEvent)
}
