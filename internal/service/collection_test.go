package service

import (
	"testing"

	"crm-console/internal/model"
)

func TestCollection_Lifecycle(t *testing.T) {
	col := NewCollection()
	if !col.NeedsFetch() {
		t.Fatal("new collection must need a fetch")
	}

	col.Append(&model.Lead{ID: "ignored"})
	if col.Len() != 0 {
		t.Error("append before the first load should be dropped")
	}

	if replaced := col.Replace([]model.Record{&model.Lead{ID: "1"}, &model.Lead{ID: "2"}}); replaced {
		t.Error("first load is not a replacement")
	}
	if col.NeedsFetch() {
		t.Error("loaded collection should not need a fetch")
	}

	snapshot := col.Snapshot()
	col.Remove("1")
	if len(snapshot) != 2 || col.Len() != 1 {
		t.Errorf("snapshot = %d, len = %d", len(snapshot), col.Len())
	}

	if col.Patch(&model.Lead{ID: "missing"}) {
		t.Error("patch of an unknown id should report false")
	}
	if !col.Patch(&model.Lead{ID: "2", Title: "patched"}) {
		t.Fatal("patch of a cached id should succeed")
	}
	rec, _ := col.Find("2")
	if rec.(*model.Lead).Title != "patched" {
		t.Error("patch did not replace the record")
	}

	col.MarkStale()
	if !col.NeedsFetch() {
		t.Error("stale collection should need a fetch")
	}
	if replaced := col.Replace(nil); !replaced {
		t.Error("second load is a replacement")
	}
}
