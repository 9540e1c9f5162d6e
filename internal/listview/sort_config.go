package listview

import "strings"

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts asc/desc in any case; anything else is Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// SortConfig is the current sort column. An empty Key means input order.
type SortConfig struct {
	Key       string    `json:"key,omitempty"`
	Direction Direction `json:"direction"`
}

// Toggle selects key: the same key flips direction, a new key starts Asc.
func (s SortConfig) Toggle(key string) SortConfig {
	if key != "" && key == s.Key {
		if s.Direction == Asc {
			return SortConfig{Key: key, Direction: Desc}
		}
		return SortConfig{Key: key, Direction: Asc}
	}
	return SortConfig{Key: key, Direction: Asc}
}
