package query

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Matches reports whether rec satisfies every pair in q.Where.
// A nil query matches everything.
func (q *Query) Matches(rec map[string]any) bool {
	if q == nil {
		return true
	}
	for field, want := range q.Where {
		got, ok := rec[field]
		if !ok || !Equal(got, want) {
			return false
		}
	}
	return true
}

// Apply filters records by q.Where and sorts them by q.Order.
// The input slice is not modified. Records without the order field sort
// after those that have it.
func (q *Query) Apply(records []map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		if q.Matches(rec) {
			out = append(out, rec)
		}
	}
	if q == nil {
		return out
	}

	by, ok := ParseOrder(q.Order)
	if !ok {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i][by.Field], out[j][by.Field])
	})
	if by.Desc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Equal compares two decoded JSON values. Numbers compare by value
// regardless of their Go representation.
func Equal(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

// Less orders two field values for sorting. Nil sorts last. Numbers,
// strings and booleans compare naturally; mixed or unknown types fall back
// to comparing their string forms.
func Less(a, b any) bool {
	if a == nil || b == nil {
		return a != nil && b == nil
	}

	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa < fb
		}
	}

	switch va := a.(type) {
	case string:
		if vb, ok := b.(string); ok {
			return va < vb
		}
	case bool:
		if vb, ok := b.(bool); ok {
			return !va && vb
		}
	}

	return fmt.Sprintf("%v", a) < fmt.Sprintf("%v", b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
