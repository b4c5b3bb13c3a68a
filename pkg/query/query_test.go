package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(records []map[string]any) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r["name"]
	}
	return out
}

func TestParse(t *testing.T) {
	t.Run("empty yields nil", func(t *testing.T) {
		q, err := Parse("  ")
		require.NoError(t, err)
		assert.Nil(t, q)
		assert.True(t, q.IsZero())
	})

	t.Run("where and order", func(t *testing.T) {
		q, err := Parse(`{"where":{"x":1},"order":"name DESC"}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"x": float64(1)}, q.Where)
		assert.Equal(t, "name DESC", q.Order)
		assert.False(t, q.IsZero())
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := Parse(`{"where":`)
		assert.Error(t, err)
	})

	t.Run("query must be an object", func(t *testing.T) {
		_, err := Parse(`[1,2]`)
		assert.Error(t, err)
	})

	t.Run("wrong-typed keys are ignored", func(t *testing.T) {
		q, err := Parse(`{"where":5,"order":"name"}`)
		require.NoError(t, err)
		assert.Nil(t, q.Where)
		assert.Equal(t, "name", q.Order)

		q, err = Parse(`{"where":{"x":1},"order":5}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"x": float64(1)}, q.Where)
		assert.Empty(t, q.Order)

		q, err = Parse(`{"where":[1],"order":true}`)
		require.NoError(t, err)
		assert.True(t, q.IsZero())
	})
}

func TestEncode_OmitsEmptyKeys(t *testing.T) {
	s, err := (&Query{Order: "name"}).Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"order":"name"}`, s)
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in     string
		want   OrderBy
		wantOK bool
	}{
		{"name", OrderBy{Field: "name"}, true},
		{"name ASC", OrderBy{Field: "name"}, true},
		{"name DESC", OrderBy{Field: "name", Desc: true}, true},
		{"created_at   DESC", OrderBy{Field: "created_at", Desc: true}, true},
		{"name desc", OrderBy{Field: "name desc"}, true},
		{"", OrderBy{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseOrder(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	records := []map[string]any{
		{"id": int64(1), "name": "Rex", "x": float64(1)},
		{"id": int64(2), "name": "Ace", "x": float64(2)},
		{"id": int64(3), "name": "Max", "x": float64(1)},
		{"id": int64(4), "x": float64(1)},
	}

	t.Run("nil query returns everything", func(t *testing.T) {
		var q *Query
		assert.Len(t, q.Apply(records), 4)
	})

	t.Run("where selects exact subset", func(t *testing.T) {
		q := &Query{Where: map[string]any{"x": float64(1)}}
		got := q.Apply(records)
		require.Len(t, got, 3)
		for _, r := range got {
			assert.Equal(t, float64(1), r["x"])
		}
	})

	t.Run("where matches integer ids against JSON numbers", func(t *testing.T) {
		q := &Query{Where: map[string]any{"id": float64(2)}}
		got := q.Apply(records)
		require.Len(t, got, 1)
		assert.Equal(t, "Ace", got[0]["name"])
	})

	t.Run("where on a missing field matches nothing", func(t *testing.T) {
		q := &Query{Where: map[string]any{"color": "brown"}}
		assert.Empty(t, q.Apply(records))
	})

	t.Run("order ascending puts missing fields last", func(t *testing.T) {
		q := &Query{Order: "name"}
		assert.Equal(t, []any{"Ace", "Max", "Rex", nil}, names(q.Apply(records)))
	})

	t.Run("order descending", func(t *testing.T) {
		q := &Query{Where: map[string]any{"x": float64(1)}, Order: "name DESC"}
		assert.Equal(t, []any{nil, "Rex", "Max"}, names(q.Apply(records)))
	})

	t.Run("input is not reordered", func(t *testing.T) {
		(&Query{Order: "name DESC"}).Apply(records)
		assert.Equal(t, "Rex", records[0]["name"])
	})
}

func TestLess(t *testing.T) {
	assert.True(t, Less(1, 2.5))
	assert.True(t, Less("a", "b"))
	assert.True(t, Less(false, true))
	assert.True(t, Less("x", nil))
	assert.False(t, Less(nil, "x"))
	assert.False(t, Less(nil, nil))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(int64(3), float64(3)))
	assert.True(t, Equal("a", "a"))
	assert.False(t, Equal("1", float64(1)))
	assert.True(t, Equal(map[string]any{"a": "b"}, map[string]any{"a": "b"}))
	assert.False(t, Equal(nil, false))
}
