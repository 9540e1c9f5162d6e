package listview

import "testing"

func TestSortConfig_Toggle(t *testing.T) {
	var cfg SortConfig

	cfg = cfg.Toggle("customer.name")
	if cfg.Key != "customer.name" || cfg.Direction != Asc {
		t.Fatalf("first toggle = %+v, want customer.name asc", cfg)
	}
	cfg = cfg.Toggle("customer.name")
	if cfg.Direction != Desc {
		t.Fatalf("second toggle = %+v, want desc", cfg)
	}
	cfg = cfg.Toggle("customer.name")
	if cfg.Direction != Asc {
		t.Fatalf("third toggle = %+v, want asc", cfg)
	}
	cfg = cfg.Toggle("created_at")
	if cfg.Key != "created_at" || cfg.Direction != Asc {
		t.Fatalf("new key = %+v, want created_at asc", cfg)
	}
}

func TestParseDirection(t *testing.T) {
	if ParseDirection("DESC") != Desc || ParseDirection("desc") != Desc {
		t.Error("desc not parsed")
	}
	if ParseDirection("") != Asc || ParseDirection("sideways") != Asc {
		t.Error("unknown direction should be asc")
	}
}

func TestListState_PageReset(t *testing.T) {
	s := NewListState()
	s.SetPage(3)

	s.SetSearch("")
	if s.Page != 3 {
		t.Errorf("unchanged search reset page to %d", s.Page)
	}
	s.SetSearch("acme")
	if s.Page != 1 {
		t.Errorf("new search left page at %d", s.Page)
	}

	s.SetPage(2)
	s.SetFilter("status", AllValues)
	if s.Page != 2 {
		t.Errorf("setting an unset filter to ALL reset page to %d", s.Page)
	}
	s.SetFilter("status", "QUALIFIED")
	if s.Page != 1 {
		t.Errorf("new filter value left page at %d", s.Page)
	}

	s.SetPage(4)
	s.SetFilter("status", "QUALIFIED")
	if s.Page != 4 {
		t.Errorf("same filter value reset page to %d", s.Page)
	}
	s.SetFilter("status", "")
	if s.Page != 1 || s.Filters["status"] != AllValues {
		t.Errorf("clearing filter: page=%d status=%q", s.Page, s.Filters["status"])
	}

	s.SetPage(5)
	s.ToggleSort("title")
	if s.Page != 5 {
		t.Errorf("sorting reset page to %d", s.Page)
	}
	s.SetSource()
	if s.Page != 1 {
		t.Errorf("new source left page at %d", s.Page)
	}
}

func TestListState_SetPageClamps(t *testing.T) {
	s := NewListState()
	s.SetPage(-4)
	if s.Page != 1 {
		t.Errorf("page = %d, want 1", s.Page)
	}
}

func TestListState_QueryIsIndependent(t *testing.T) {
	s := NewListState()
	s.SetFilter("status", "NEW")
	q := s.Query([]string{"title"}, 30)
	q.Filters["status"] = "LOST"
	if s.Filters["status"] != "NEW" {
		t.Error("mutating the query changed the state")
	}

	c := s.Clone()
	c.Filters["priority"] = "HIGH"
	if _, ok := s.Filters["priority"]; ok {
		t.Error("mutating the clone changed the state")
	}
}
