package listview

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// Compare orders two resolved field values. Missing values count as the
// empty string. Strings compare case-insensitively, numbers, booleans and
// times natively; values of different kinds fall back to their lowered
// printed form.
func Compare(a, b any) int {
	if a == nil {
		a = ""
	}
	if b == nil {
		b = ""
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return cmp.Compare(af, bf)
		}
	}

	return strings.Compare(strings.ToLower(fmt.Sprint(a)), strings.ToLower(fmt.Sprint(b)))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case float32:
		return float64(n), true
	}
	return 0, false
}
