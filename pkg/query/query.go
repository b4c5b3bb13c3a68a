// Package query defines the collection query object carried in the
// "query" URL parameter, and the filter and sort evaluation applied to it.
//
// On the wire a query is a JSON object with two optional keys:
//
//	{"where": {"name": "Rex"}, "order": "age DESC"}
//
// "where" is an exact-match filter: a record matches when every key/value
// pair in it equals the record's field. "order" is "<field>[ ASC|DESC]",
// ascending when the direction is omitted.
package query

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Param is the URL query parameter name that carries an encoded Query.
const Param = "query"

// Query is a collection query.
type Query struct {
	Where map[string]any `json:"where,omitempty"`
	Order string         `json:"order,omitempty"`
}

// IsZero reports whether q neither filters nor orders.
func (q *Query) IsZero() bool {
	return q == nil || (len(q.Where) == 0 && q.Order == "")
}

// Encode returns the JSON form of q.
func (q *Query) Encode() (string, error) {
	b, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("encode query: %w", err)
	}
	return string(b), nil
}

// Parse decodes a JSON-encoded query. An empty string yields a nil query.
// The query must be a JSON object; a "where" that is not an object or an
// "order" that is not a string is ignored.
func Parse(raw string) (*Query, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", raw, err)
	}

	var q Query
	if v, ok := fields["where"]; ok {
		var where map[string]any
		if json.Unmarshal(v, &where) == nil {
			q.Where = where
		}
	}
	if v, ok := fields["order"]; ok {
		var order string
		if json.Unmarshal(v, &order) == nil {
			q.Order = order
		}
	}
	return &q, nil
}

var orderPattern = regexp.MustCompile(`^(.+?)(?:\s+(ASC|DESC))?$`)

// OrderBy is a parsed "order" clause.
type OrderBy struct {
	Field string
	Desc  bool
}

// ParseOrder splits an order clause into field and direction.
// ok is false when the clause is empty.
func ParseOrder(order string) (OrderBy, bool) {
	m := orderPattern.FindStringSubmatch(strings.TrimSpace(order))
	if m == nil {
		return OrderBy{}, false
	}
	return OrderBy{Field: m[1], Desc: m[2] == "DESC"}, true
}
