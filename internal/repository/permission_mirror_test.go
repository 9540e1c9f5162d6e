package repository

import (
	"context"
	"testing"
	"time"

	"crm-console/internal/model"
)

func TestMemoryMirror(t *testing.T) {
	ctx := context.Background()
	mirror := NewMemoryMirror().(*memoryMirror)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mirror.now = func() time.Time { return now }

	if _, found, err := mirror.Load(ctx, "a"); found || err != nil {
		t.Fatalf("Load on empty mirror = %v, %v", found, err)
	}

	set := model.PermissionSet{"lead": {"edit"}}
	if err := mirror.Save(ctx, "a", "u1", set); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	set["lead"] = append(set["lead"], "delete")

	got, found, _ := mirror.Load(ctx, "a")
	if !found || got.Can("lead", "delete") || !got.Can("lead", "edit") {
		t.Errorf("Load = %v, %v; saved set must be copied", got, found)
	}

	now = now.Add(48 * time.Hour)
	mirror.Save(ctx, "b", "u2", model.PermissionSet{})
	pruned, err := mirror.Prune(ctx, now.Add(-24*time.Hour))
	if err != nil || pruned != 1 {
		t.Errorf("Prune = %d, %v; want 1", pruned, err)
	}
	if _, found, _ := mirror.Load(ctx, "a"); found {
		t.Error("old mirror should be pruned")
	}

	mirror.Save(ctx, "c", "u3", model.PermissionSet{})
	if err := mirror.Delete(ctx, "c"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if n, _ := mirror.DeleteAll(ctx); n != 1 {
		t.Errorf("DeleteAll = %d, want 1", n)
	}
}
