package model

import (
	"encoding/json"
	"testing"
)

func TestResolve_NestedPaths(t *testing.T) {
	lead := &Lead{
		ID:         "7",
		Title:      "Fleet renewal",
		Customer:   &CustomerRef{Name: "Acme Corp", Phone: "0812345"},
		Status:     LeadQualified,
		Value:      1500,
		Timestamps: Timestamps{CreatedAt: "2024-03-01T10:00:00Z"},
	}

	tests := []struct {
		path string
		want any
	}{
		{"title", "Fleet renewal"},
		{"customer.name", "Acme Corp"},
		{"customer.phone", "0812345"},
		{"status", "QUALIFIED"},
		{"value", 1500.0},
		{"created_at", "2024-03-01T10:00:00Z"},
		{"id", int64(7)},
		{"Title", "Fleet renewal"},
	}
	for _, tt := range tests {
		if got := lead.Field(tt.path); got != tt.want {
			t.Errorf("Field(%q) = %#v, want %#v", tt.path, got, tt.want)
		}
	}
}

func TestResolve_MissingIntermediate(t *testing.T) {
	lead := &Lead{Title: "No owner"}

	for _, path := range []string{"assigned_to.name", "customer.email", "nope", "customer..name", "", "title.length"} {
		if got := lead.Field(path); got != nil {
			t.Errorf("Field(%q) = %#v, want nil", path, got)
		}
	}
}

func TestResolve_Maps(t *testing.T) {
	doc := map[string]any{
		"customer": map[string]any{"name": "Globex"},
		"score":    42,
	}
	if got := Resolve(doc, "customer.name"); got != "Globex" {
		t.Errorf("customer.name = %#v", got)
	}
	if got := Resolve(doc, "score"); got != int64(42) {
		t.Errorf("score = %#v", got)
	}
	if got := Resolve(doc, "customer.phone"); got != nil {
		t.Errorf("customer.phone = %#v, want nil", got)
	}
	if got := Resolve(nil, "a"); got != nil {
		t.Errorf("nil root = %#v, want nil", got)
	}
}

func TestID_UnmarshalStringOrNumber(t *testing.T) {
	var lead Lead
	if err := json.Unmarshal([]byte(`{"id": 42, "title": "x"}`), &lead); err != nil {
		t.Fatalf("unmarshal numeric id: %v", err)
	}
	if lead.RecordID() != "42" {
		t.Errorf("RecordID() = %q, want 42", lead.RecordID())
	}

	var quote Quotation
	if err := json.Unmarshal([]byte(`{"id": "q-1"}`), &quote); err != nil {
		t.Fatalf("unmarshal string id: %v", err)
	}
	if quote.RecordID() != "q-1" {
		t.Errorf("RecordID() = %q, want q-1", quote.RecordID())
	}

	var member Member
	if err := json.Unmarshal([]byte(`{"id": {"x": 1}}`), &member); err == nil {
		t.Error("expected error for object id")
	}
}

func TestReassign_PatchesOwner(t *testing.T) {
	var rec Assignable = &Customer{ID: "c1", Name: "Initech"}
	rec.Reassign(MemberRef{ID: "m9", Name: "Peter"})
	if got := rec.Field("assigned_to.name"); got != "Peter" {
		t.Errorf("assigned_to.name = %#v, want Peter", got)
	}
}

func TestResourceDecodeAll(t *testing.T) {
	res, ok := LookupResource("leads")
	if !ok {
		t.Fatal("leads resource missing")
	}
	raws := []json.RawMessage{
		json.RawMessage(`{"id": 1, "title": "A", "customer": {"name": "Acme"}}`),
		json.RawMessage(`{"id": "2", "title": "B"}`),
	}
	recs, err := res.DecodeAll(raws)
	if err != nil {
		t.Fatalf("DecodeAll error: %v", err)
	}
	if len(recs) != 2 || recs[0].RecordID() != "1" || recs[1].RecordID() != "2" {
		t.Fatalf("unexpected records: %+v", recs)
	}
	if _, ok := recs[0].(*Lead); !ok {
		t.Errorf("record type = %T, want *Lead", recs[0])
	}

	if _, err := res.DecodeAll([]json.RawMessage{json.RawMessage(`[1,2]`)}); err == nil {
		t.Error("expected decode error for array record")
	}
}

func TestLookupResource_Unknown(t *testing.T) {
	if _, ok := LookupResource("invoices"); ok {
		t.Error("invoices should not be a resource")
	}
}

func TestID_SortValue(t *testing.T) {
	tests := []struct {
		id   ID
		want any
	}{
		{"42", int64(42)},
		{"-3", int64(-3)},
		{"007", "007"},
		{"q-1", "q-1"},
		{"", ""},
		{"99999999999999999999", "99999999999999999999"},
	}
	for _, tt := range tests {
		if got := tt.id.SortValue(); got != tt.want {
			t.Errorf("ID(%q).SortValue() = %#v, want %#v", tt.id, got, tt.want)
		}
	}
}
