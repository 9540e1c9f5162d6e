package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"crm-console/internal/model"
	"crm-console/pkg/logger"
	"crm-console/pkg/validator"
)

var (
	ErrEmptyPayload = errors.New("request body is empty")
	ErrMissingOwner = errors.New("owner_id is required")
	ErrMissingID    = errors.New("record id is required")
)

// ValidationError is a client-side rejection; no request reached the CRM API.
type ValidationError struct {
	Fields []*validator.ErrorResponse
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.FailedField+" failed "+f.Tag)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

// CollectionSource hands out the cached collections mutations patch.
type CollectionSource interface {
	Collection(sessionKey string, res model.Resource) *Collection
}

// RecordGateway runs mutations confirmation-first: validate, call the CRM
// API, then patch the session's cached collection and notify consoles.
// A failed call leaves the collection unchanged.
type RecordGateway interface {
	Create(ctx context.Context, sess model.Session, res model.Resource, payload []byte) (model.Record, error)
	Update(ctx context.Context, sess model.Session, res model.Resource, id string, patch map[string]interface{}) (model.Record, error)
	Delete(ctx context.Context, sess model.Session, res model.Resource, id string) error
	Reassign(ctx context.Context, sess model.Session, res model.Resource, id, ownerID string) (model.Record, error)
}

type recordGateway struct {
	api         RecordAPI
	collections CollectionSource
	notifier    ChangeNotifier
	log         *logger.Logger
}

func NewRecordGateway(api RecordAPI, collections CollectionSource, notifier ChangeNotifier) RecordGateway {
	return &recordGateway{
		api:         api,
		collections: collections,
		notifier:    notifier,
		log:         logger.New("GATEWAY"),
	}
}

func (g *recordGateway) Create(ctx context.Context, sess model.Session, res model.Resource, payload []byte) (model.Record, error) {
	if len(strings.TrimSpace(string(payload))) == 0 {
		return nil, &ValidationError{Err: ErrEmptyPayload}
	}
	rec, err := res.Decode(payload)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}
	if errs := validator.ValidateStruct(rec); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	raw, err := g.api.Create(ctx, sess.Token, res.RecordPath, rec)
	if err != nil {
		return nil, err
	}

	col := g.collections.Collection(sess.Key, res)
	created, ok := g.decode(res, raw)
	if !ok {
		col.MarkStale()
		g.publish(sess, res, model.ChangeCreated, "")
		return nil, nil
	}
	col.Append(created)
	g.publish(sess, res, model.ChangeCreated, created.RecordID())
	return created, nil
}

func (g *recordGateway) Update(ctx context.Context, sess model.Session, res model.Resource, id string, patch map[string]interface{}) (model.Record, error) {
	if id == "" {
		return nil, &ValidationError{Err: ErrMissingID}
	}
	if len(patch) == 0 {
		return nil, &ValidationError{Err: ErrEmptyPayload}
	}
	if errs := validatePatch(res, patch); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	raw, err := g.api.Update(ctx, sess.Token, res.RecordPath, id, patch)
	if err != nil {
		return nil, err
	}

	col := g.collections.Collection(sess.Key, res)
	updated, ok := g.decode(res, raw)
	if !ok || !col.Patch(updated) {
		col.MarkStale()
	}
	g.publish(sess, res, model.ChangeUpdated, id)
	if !ok {
		return nil, nil
	}
	return updated, nil
}

func (g *recordGateway) Delete(ctx context.Context, sess model.Session, res model.Resource, id string) error {
	if id == "" {
		return &ValidationError{Err: ErrMissingID}
	}
	if err := g.api.Delete(ctx, sess.Token, res.RecordPath, id); err != nil {
		return err
	}
	g.collections.Collection(sess.Key, res).Remove(id)
	g.publish(sess, res, model.ChangeDeleted, id)
	return nil
}

func (g *recordGateway) Reassign(ctx context.Context, sess model.Session, res model.Resource, id, ownerID string) (model.Record, error) {
	if id == "" {
		return nil, &ValidationError{Err: ErrMissingID}
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, &ValidationError{Err: ErrMissingOwner}
	}

	raw, err := g.api.Reassign(ctx, sess.Token, res.RecordPath, id, ownerID)
	if err != nil {
		return nil, err
	}

	col := g.collections.Collection(sess.Key, res)
	defer g.publish(sess, res, model.ChangeAssigned, id)

	if updated, ok := g.decode(res, raw); ok {
		if !col.Patch(updated) {
			col.MarkStale()
		}
		return updated, nil
	}

	// bare acknowledgement: move the owner on a copy of the cached record
	current, found := col.Find(id)
	if !found {
		col.MarkStale()
		return nil, nil
	}
	copied, err := cloneRecord(res, current)
	if err != nil {
		col.MarkStale()
		return nil, nil
	}
	assignable, ok := copied.(model.Assignable)
	if !ok {
		col.MarkStale()
		return nil, nil
	}
	assignable.Reassign(g.owner(sess, ownerID))
	col.Patch(assignable)
	return assignable, nil
}

// owner resolves a member reference from the session's cached members list,
// falling back to the bare id.
func (g *recordGateway) owner(sess model.Session, ownerID string) model.MemberRef {
	ref := model.MemberRef{ID: model.ID(ownerID)}
	members, ok := model.LookupResource("members")
	if !ok {
		return ref
	}
	if rec, found := g.collections.Collection(sess.Key, members).Find(ownerID); found {
		if m, ok := rec.(*model.Member); ok {
			ref.Name = m.Name
			ref.Email = m.Email
		}
	}
	return ref
}

func (g *recordGateway) decode(res model.Resource, raw json.RawMessage) (model.Record, bool) {
	if raw == nil {
		return nil, false
	}
	rec, err := res.Decode(raw)
	if err != nil || rec.RecordID() == "" {
		g.log.Warn("unusable %s record in mutation response: %v", res.Name, err)
		return nil, false
	}
	return rec, true
}

func (g *recordGateway) publish(sess model.Session, res model.Resource, action, id string) {
	if g.notifier == nil {
		return
	}
	g.notifier.Notify(model.NewChangeEvent(res.Name, action, id, sess.UserID))
}

// validatePatch checks each patched key against the resource's rule for it.
// Keys without a rule pass through.
func validatePatch(res model.Resource, patch map[string]interface{}) []*validator.ErrorResponse {
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []*validator.ErrorResponse
	for _, key := range keys {
		rule, ok := res.PatchRules[key]
		if !ok {
			continue
		}
		out = append(out, validator.ValidateVar(key, patch[key], rule)...)
	}
	return out
}

func cloneRecord(res model.Resource, rec model.Record) (model.Record, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("clone %s record: %w", res.Name, err)
	}
	return res.Decode(raw)
}
