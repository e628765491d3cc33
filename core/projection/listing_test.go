package projection_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/goto/intake/core/projection"
	"github.com/goto/intake/domain"
)

func views(records ...*domain.Request) []*domain.RequestView {
	return projection.NewProjector(time.UTC).Project(records, now)
}

func ids(vs []*domain.RequestView) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.DocumentID)
	}
	return out
}

func TestListings(t *testing.T) {
	vs := views(
		&domain.Request{DocumentID: "pending-late", Status: domain.RequestStatusPending, LimitDate: "2024-01-20", StartDate: "2024-01-09T08:00:00Z"},
		&domain.Request{DocumentID: "approved-soon", Status: domain.RequestStatusApproved, LimitDate: "2024-01-11", StartDate: "2024-01-11T09:00:00Z"},
		&domain.Request{DocumentID: "no-deadline", Status: domain.RequestStatusInProcess},
		&domain.Request{DocumentID: "done", Status: domain.RequestStatusCompleted, LimitDate: "2024-01-10"},
		&domain.Request{DocumentID: "dropped", Status: domain.RequestStatusCancelled, LimitDate: "2024-01-10"},
		&domain.Request{DocumentID: "unknown", Status: domain.RequestStatusUnknown},
	)

	t.Run("Active", func(t *testing.T) {
		assert.Equal(t, []string{"pending-late", "approved-soon", "no-deadline"}, ids(projection.Active(vs)))
	})

	t.Run("Cancelled", func(t *testing.T) {
		assert.Equal(t, []string{"dropped"}, ids(projection.Cancelled(vs)))
	})

	t.Run("ByStatus", func(t *testing.T) {
		assert.Equal(t, []string{"done", "dropped"}, ids(projection.ByStatus(vs, domain.RequestStatusCompleted, domain.RequestStatusCancelled)))
		assert.Empty(t, projection.ByStatus(vs))
	})

	t.Run("UpcomingDeadlines", func(t *testing.T) {
		assert.Equal(t, []string{"approved-soon", "pending-late", "no-deadline"}, ids(projection.UpcomingDeadlines(vs, projection.DefaultListingLimit)))
		assert.Equal(t, []string{"approved-soon"}, ids(projection.UpcomingDeadlines(vs, 1)))
	})

	t.Run("UpcomingDeadlines caps mixed deadlines at the listing limit", func(t *testing.T) {
		seven := views(
			&domain.Request{DocumentID: "a", Status: domain.RequestStatusPending, LimitDate: "2024-01-15"},
			&domain.Request{DocumentID: "b", Status: domain.RequestStatusApproved},
			&domain.Request{DocumentID: "c", Status: domain.RequestStatusInProcess, LimitDate: "2024-01-11"},
			&domain.Request{DocumentID: "d", Status: domain.RequestStatusApproved, LimitDate: "2024-01-13T10:00:00Z"},
			&domain.Request{DocumentID: "e", Status: domain.RequestStatusPending, LimitDate: "not a date"},
			&domain.Request{DocumentID: "f", Status: domain.RequestStatusPending, LimitDate: "2024-01-12"},
			&domain.Request{DocumentID: "g", Status: domain.RequestStatusInProcess, LimitDate: "2024-01-20"},
		)

		top := projection.UpcomingDeadlines(seven, projection.DefaultListingLimit)
		assert.Len(t, top, 5)
		assert.Equal(t, []string{"c", "f", "d", "a", "g"}, ids(top))
		for i := 1; i < len(top); i++ {
			assert.False(t, top[i].Limit.Before(*top[i-1].Limit))
		}

		all := projection.UpcomingDeadlines(seven, 0)
		assert.Equal(t, []string{"c", "f", "d", "a", "g", "b", "e"}, ids(all))
	})

	t.Run("WorkQueue", func(t *testing.T) {
		assert.Equal(t, []string{"pending-late", "approved-soon"}, ids(projection.WorkQueue(vs, 0)))
	})

	t.Run("Summary", func(t *testing.T) {
		s := projection.Summary(vs)
		assert.Equal(t, 6, s.Total)
		assert.Equal(t, 1, s.ByStatus[domain.RequestStatusCancelled])
		assert.Equal(t, 1, s.ByBucket[domain.BucketUrgent])
		assert.Equal(t, 1, s.ByBucket[domain.BucketDueToday])
		assert.Equal(t, 0, s.Conflicts)
	})
}

func TestSort(t *testing.T) {
	build := func() []*domain.RequestView {
		return views(
			&domain.Request{DocumentID: "b", Name: "bob", Status: domain.RequestStatusApproved, LimitDate: "2024-01-15"},
			&domain.Request{DocumentID: "a", Name: "Alice", Status: domain.RequestStatusCompleted},
			&domain.Request{DocumentID: "c", Name: "carol", Status: domain.RequestStatusPending, LimitDate: "2024-01-12"},
		)
	}

	tests := []struct {
		key  string
		desc bool
		want []string
	}{
		{key: projection.SortByName, want: []string{"a", "b", "c"}},
		{key: projection.SortByName, desc: true, want: []string{"c", "b", "a"}},
		{key: projection.SortByStatus, want: []string{"c", "b", "a"}},
		{key: projection.SortByLimitDate, want: []string{"c", "b", "a"}},
		{key: projection.SortByDaysRemaining, desc: true, want: []string{"b", "c", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			vs := build()
			assert.NoError(t, projection.Sort(vs, tt.key, tt.desc))
			assert.Equal(t, tt.want, ids(vs))
		})
	}

	t.Run("unknown key", func(t *testing.T) {
		assert.Error(t, projection.Sort(build(), "color", false))
	})
}
