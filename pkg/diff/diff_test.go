package diff_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goto/intake/pkg/diff"
)

type record struct {
	Status      string                 `json:"status"`
	Responsible string                 `json:"responsible,omitempty"`
	UpdatedAt   string                 `json:"updated_at,omitempty"`
	Details     map[string]interface{} `json:"request_details,omitempty"`
}

func TestCompare(t *testing.T) {
	testCases := []struct {
		name     string
		before   interface{}
		after    interface{}
		opts     []diff.Option
		expected diff.Changelog
	}{
		{
			name:     "identical records",
			before:   record{Status: "Pending"},
			after:    record{Status: "Pending"},
			expected: nil,
		},
		{
			name:   "approval sets status and responsible",
			before: record{Status: "Pending"},
			after:  record{Status: "Approved", Responsible: "Alice"},
			expected: diff.Changelog{
				{Op: "add", Field: "responsible", NewValue: "Alice"},
				{Op: "replace", Field: "status", OldValue: "Pending", NewValue: "Approved"},
			},
		},
		{
			name:   "removed detail keeps its previous value",
			before: record{Status: "Pending", Details: map[string]interface{}{"site": "HQ", "kind": "repair"}},
			after:  record{Status: "Pending", Details: map[string]interface{}{"kind": "repair"}},
			expected: diff.Changelog{
				{Op: "remove", Field: "request_details.site", OldValue: "HQ"},
			},
		},
		{
			name:   "ignored fields are dropped",
			before: record{Status: "Approved", UpdatedAt: "2024-01-08T09:00:00Z"},
			after:  record{Status: "In Process", UpdatedAt: "2024-01-09T09:00:00Z"},
			opts:   []diff.Option{diff.Ignore("updated_at")},
			expected: diff.Changelog{
				{Op: "replace", Field: "status", OldValue: "Approved", NewValue: "In Process"},
			},
		},
		{
			name:   "ignoring a parent drops nested changes",
			before: record{Details: map[string]interface{}{"site": "HQ"}},
			after:  record{Details: map[string]interface{}{"site": "Lab"}},
			opts:   []diff.Option{diff.Ignore("request_details")},
		},
		{
			name:   "slice items",
			before: []string{"a", "b", "c"},
			after:  []string{"a", "d"},
			expected: diff.Changelog{
				{Op: "replace", Field: "1", OldValue: "b", NewValue: "d"},
				{Op: "remove", Field: "2", OldValue: "c"},
			},
		},
		{
			name:   "escaped pointer segments",
			before: map[string]interface{}{"a/b": 1},
			after:  map[string]interface{}{"a/b": 2},
			expected: diff.Changelog{
				{Op: "replace", Field: "a/b", OldValue: float64(1), NewValue: float64(2)},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := diff.Compare(tc.before, tc.after, tc.opts...)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tc.expected, actual, cmpopts.SortSlices(func(a, b *diff.Change) bool {
				return a.Field < b.Field
			}), cmpopts.EquateEmpty()))
		})
	}

	t.Run("actor is stamped on every change", func(t *testing.T) {
		actual, err := diff.Compare(
			record{Status: "Pending"},
			record{Status: "Approved", Responsible: "Alice"},
			diff.WithActor("ops@example.com"),
		)
		require.NoError(t, err)
		require.Len(t, actual, 2)
		for _, ch := range actual {
			assert.Equal(t, "ops@example.com", ch.Actor)
		}
	})

	t.Run("unserializable input", func(t *testing.T) {
		_, err := diff.Compare(make(chan int), record{})
		assert.Error(t, err)
	})
}

func TestChangelog_Fields(t *testing.T) {
	c := diff.Changelog{
		{Op: "replace", Field: "status"},
		{Op: "add", Field: "responsible"},
		{Op: "replace", Field: "status"},
	}

	assert.Equal(t, []string{"responsible", "status"}, c.Fields())
	assert.Equal(t, "responsible, status", c.String())
	assert.Equal(t, "", diff.Changelog(nil).String())
}
