// Package listview derives the visible rows of a console list page from a
// source collection: search filter, attribute filters, stable sort, then a
// fixed-size page. Every function here is pure and never mutates its input.
package listview

import (
	"fmt"
	"slices"
	"strings"

	"crm-console/internal/model"
)

// AllValues is the filter value meaning "no constraint".
const AllValues = "ALL"

const DefaultPageSize = 30

type Query struct {
	Search       string
	SearchFields []string
	Filters      map[string]string
	Sort         SortConfig
	Page         int // 1-based; out of range yields no rows
	PageSize     int
}

type Result[R model.Record] struct {
	Rows       []R
	Total      int
	TotalPages int
}

// Run applies search, filters, sort and pagination in that order.
func Run[R model.Record](source []R, q Query) Result[R] {
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}

	rows := Search(source, q.Search, q.SearchFields)
	rows = Filter(rows, q.Filters)
	rows = Sort(rows, q.Sort)

	return Result[R]{
		Rows:       Paginate(rows, q.Page, size),
		Total:      len(rows),
		TotalPages: TotalPages(len(rows), size),
	}
}

// Search keeps records where any field contains term. String values match
// case-insensitively; other values (numbers, phone ids) match on their
// printed form as-is. An empty term keeps everything.
func Search[R model.Record](source []R, term string, fields []string) []R {
	if term == "" {
		return slices.Clone(source)
	}
	lowered := strings.ToLower(term)

	out := make([]R, 0, len(source))
	for _, rec := range source {
		for _, path := range fields {
			if containsTerm(rec.Field(path), term, lowered) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

func containsTerm(v any, term, lowered string) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.Contains(strings.ToLower(val), lowered)
	default:
		return strings.Contains(fmt.Sprint(val), term)
	}
}

// Filter keeps records matching every constrained filter exactly. Filters set
// to AllValues or empty are ignored.
func Filter[R model.Record](rows []R, filters map[string]string) []R {
	active := make(map[string]string, len(filters))
	for field, want := range filters {
		if want != "" && want != AllValues {
			active[field] = want
		}
	}
	if len(active) == 0 {
		return slices.Clone(rows)
	}

	out := make([]R, 0, len(rows))
	for _, rec := range rows {
		matched := true
		for field, want := range active {
			if stringValue(rec.Field(field)) != want {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, rec)
		}
	}
	return out
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// Sort returns a stably sorted copy. An empty key keeps input order.
func Sort[R model.Record](rows []R, cfg SortConfig) []R {
	out := slices.Clone(rows)
	if cfg.Key == "" {
		return out
	}
	slices.SortStableFunc(out, func(a, b R) int {
		c := Compare(a.Field(cfg.Key), b.Field(cfg.Key))
		if cfg.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}

// Paginate slices [(page-1)*size, page*size). Pages outside 1..TotalPages
// return an empty slice.
func Paginate[R any](rows []R, page, size int) []R {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 {
		return []R{}
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return []R{}
	}
	end := min(start+size, len(rows))
	return slices.Clone(rows[start:end])
}

func TotalPages(total, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	return (total + size - 1) / size
}
