package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"crm-console/internal/model"
	"crm-console/internal/repository"
)

type brokenMirror struct{}

func (brokenMirror) Load(context.Context, string) (model.PermissionSet, bool, error) {
	return nil, false, errors.New("mirror down")
}
func (brokenMirror) Save(context.Context, string, string, model.PermissionSet) error {
	return errors.New("mirror down")
}
func (brokenMirror) Delete(context.Context, string) error { return errors.New("mirror down") }
func (brokenMirror) DeleteAll(context.Context) (int64, error) {
	return 0, errors.New("mirror down")
}
func (brokenMirror) Prune(context.Context, time.Time) (int64, error) {
	return 0, errors.New("mirror down")
}

func TestPermissionStore_FailClosedBeforeFetch(t *testing.T) {
	store := NewPermissionStore(&fakePermissionAPI{}, repository.NewMemoryMirror())
	ctx := context.Background()

	if got := store.Get(ctx, "unknown"); len(got) != 0 {
		t.Errorf("Get = %v, want empty", got)
	}
	if store.Can(ctx, "unknown", model.CategoryLead, model.ActionDelete) {
		t.Error("Can should be false before any fetch")
	}
}

func TestPermissionStore_FetchFailureReturnsEmpty(t *testing.T) {
	api := &fakePermissionAPI{err: errOffline}
	store := NewPermissionStore(api, repository.NewMemoryMirror())
	ctx := context.Background()
	sess := testSession()

	if got := store.Fetch(ctx, sess); len(got) != 0 {
		t.Errorf("Fetch = %v, want empty", got)
	}
	if store.Get(ctx, sess.Key).Can(model.CategoryLead, model.ActionDelete) {
		t.Error("lead delete should be hidden after a failed fetch")
	}
}

func TestPermissionStore_FetchFailureKeepsCache(t *testing.T) {
	api := &fakePermissionAPI{set: model.PermissionSet{"lead": {"edit"}}}
	store := NewPermissionStore(api, repository.NewMemoryMirror())
	ctx := context.Background()
	sess := testSession()

	store.Fetch(ctx, sess)
	api.err = errOffline
	store.Fetch(ctx, sess)

	if !store.Can(ctx, sess.Key, "lead", "edit") {
		t.Error("failed refetch must not clear the cached grants")
	}
}

func TestPermissionStore_GetAfterFetch(t *testing.T) {
	api := &fakePermissionAPI{set: model.PermissionSet{"lead": {"edit", "delete"}}}
	store := NewPermissionStore(api, repository.NewMemoryMirror())
	ctx := context.Background()
	sess := testSession()

	store.Fetch(ctx, sess)
	for i := 0; i < 3; i++ {
		if !store.Can(ctx, sess.Key, "lead", "delete") {
			t.Fatal("lead delete should be granted")
		}
	}
	if api.calls != 1 {
		t.Errorf("api calls = %d, reads must be cache-only", api.calls)
	}

	// callers cannot mutate the cached set
	got := store.Get(ctx, sess.Key)
	got["quotation"] = []string{"delete"}
	if store.Can(ctx, sess.Key, "quotation", "delete") {
		t.Error("mutating a returned set leaked into the cache")
	}
}

func TestPermissionStore_HydratesFromMirror(t *testing.T) {
	mirror := repository.NewMemoryMirror()
	ctx := context.Background()
	sess := testSession()

	first := NewPermissionStore(&fakePermissionAPI{set: model.PermissionSet{"customer": {"edit"}}}, mirror)
	first.Fetch(ctx, sess)

	api := &fakePermissionAPI{}
	restarted := NewPermissionStore(api, mirror)
	if !restarted.Can(ctx, sess.Key, "customer", "edit") {
		t.Error("expected grants hydrated from the mirror")
	}
	if api.calls != 0 {
		t.Errorf("hydration called the API %d times", api.calls)
	}
}

func TestPermissionStore_Clear(t *testing.T) {
	mirror := repository.NewMemoryMirror()
	api := &fakePermissionAPI{set: model.PermissionSet{"lead": {"edit"}}}
	store := NewPermissionStore(api, mirror)
	ctx := context.Background()
	sess := testSession()

	store.Fetch(ctx, sess)
	if err := store.Clear(ctx, sess.Key); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if len(store.Get(ctx, sess.Key)) != 0 {
		t.Error("Get after Clear should be empty")
	}
	if _, found, _ := mirror.Load(ctx, sess.Key); found {
		t.Error("mirror should be wiped by Clear")
	}
}

func TestPermissionStore_BrokenMirror(t *testing.T) {
	api := &fakePermissionAPI{set: model.PermissionSet{"lead": {"edit"}}}
	store := NewPermissionStore(api, brokenMirror{})
	ctx := context.Background()
	sess := testSession()

	if got := store.Get(ctx, sess.Key); len(got) != 0 {
		t.Errorf("Get = %v, want empty", got)
	}
	if got := store.Fetch(ctx, sess); !got.Can("lead", "edit") {
		t.Errorf("Fetch = %v, a mirror failure must not fail the fetch", got)
	}
	if !store.Can(ctx, sess.Key, "lead", "edit") {
		t.Error("memory cache should still hold the fetched set")
	}
	if err := store.Clear(ctx, sess.Key); err == nil {
		t.Error("Clear should report the mirror failure")
	}
	if store.Can(ctx, sess.Key, "lead", "edit") {
		t.Error("memory must be wiped even when the mirror fails")
	}
}
