package listview

import "maps"

// ListState is the caller-owned UI state of one list page. Changing what is
// in the filtered set (search, a filter, the source collection) moves the
// page back to 1; sorting and paging do not.
type ListState struct {
	Search  string            `json:"search"`
	Filters map[string]string `json:"filters"`
	Sort    SortConfig        `json:"sort"`
	Page    int               `json:"page"`
}

func NewListState() *ListState {
	return &ListState{
		Filters: map[string]string{},
		Sort:    SortConfig{Direction: Asc},
		Page:    1,
	}
}

func (s *ListState) SetSearch(term string) {
	if term == s.Search {
		return
	}
	s.Search = term
	s.Page = 1
}

// SetFilter constrains field to value; "" or AllValues clears it.
func (s *ListState) SetFilter(field, value string) {
	if value == "" {
		value = AllValues
	}
	current, ok := s.Filters[field]
	if !ok {
		current = AllValues
	}
	if current == value {
		return
	}
	if s.Filters == nil {
		s.Filters = map[string]string{}
	}
	s.Filters[field] = value
	s.Page = 1
}

// SetSource records that the source collection was replaced.
func (s *ListState) SetSource() {
	s.Page = 1
}

func (s *ListState) ToggleSort(key string) {
	s.Sort = s.Sort.Toggle(key)
}

func (s *ListState) SetSort(cfg SortConfig) {
	if cfg.Direction != Desc {
		cfg.Direction = Asc
	}
	s.Sort = cfg
}

func (s *ListState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.Page = page
}

// Query builds the engine input for this state.
func (s *ListState) Query(searchFields []string, pageSize int) Query {
	return Query{
		Search:       s.Search,
		SearchFields: searchFields,
		Filters:      maps.Clone(s.Filters),
		Sort:         s.Sort,
		Page:         s.Page,
		PageSize:     pageSize,
	}
}

// Clone returns an independent copy, used when handing state to callers.
func (s *ListState) Clone() ListState {
	out := *s
	out.Filters = maps.Clone(s.Filters)
	if out.Filters == nil {
		out.Filters = map[string]string{}
	}
	return out
}
