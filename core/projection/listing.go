package projection

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goto/intake/domain"
	"github.com/goto/intake/pkg/slices"
)

const DefaultListingLimit = 5

const (
	SortByName          = "name"
	SortByStatus        = "status"
	SortByDepartment    = "department"
	SortByStartDate     = "start_date"
	SortByLimitDate     = "limit_date"
	SortByDaysRemaining = "days_remaining"
	SortByCreatedAt     = "created_at"
)

var SortKeys = []string{
	SortByName,
	SortByStatus,
	SortByDepartment,
	SortByStartDate,
	SortByLimitDate,
	SortByDaysRemaining,
	SortByCreatedAt,
}

// Active keeps requests that are still moving through the workflow.
func Active(views []*domain.RequestView) []*domain.RequestView {
	return filter(views, func(v *domain.RequestView) bool {
		return v.Status.IsActive()
	})
}

func Cancelled(views []*domain.RequestView) []*domain.RequestView {
	return ByStatus(views, domain.RequestStatusCancelled)
}

func ByStatus(views []*domain.RequestView, statuses ...domain.RequestStatus) []*domain.RequestView {
	return filter(views, func(v *domain.RequestView) bool {
		return slices.GenericsSliceContainsOne(statuses, v.Status)
	})
}

// UpcomingDeadlines lists active requests by ascending deadline. Requests without a
// deadline trail the list in arrival order.
func UpcomingDeadlines(views []*domain.RequestView, limit int) []*domain.RequestView {
	out := Active(views)
	sortByTime(out, func(v *domain.RequestView) *time.Time { return v.Limit })
	return head(out, limit)
}

// WorkQueue lists pending and approved requests by expected start.
func WorkQueue(views []*domain.RequestView, limit int) []*domain.RequestView {
	out := ByStatus(views, domain.RequestStatusPending, domain.RequestStatusApproved)
	sortByTime(out, func(v *domain.RequestView) *time.Time { return v.ExpectedStartTime })
	return head(out, limit)
}

// Sort orders views in place by one of SortKeys. Missing values always trail.
func Sort(views []*domain.RequestView, key string, desc bool) error {
	var less func(a, b *domain.RequestView) bool
	switch key {
	case SortByName:
		less = func(a, b *domain.RequestView) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortByDepartment:
		less = func(a, b *domain.RequestView) bool {
			return strings.ToLower(a.Department) < strings.ToLower(b.Department)
		}
	case SortByStatus:
		less = func(a, b *domain.RequestView) bool { return statusRank(a.Status) < statusRank(b.Status) }
	case SortByStartDate:
		sortByTimeDirection(views, func(v *domain.RequestView) *time.Time { return v.Start }, desc)
		return nil
	case SortByLimitDate:
		sortByTimeDirection(views, func(v *domain.RequestView) *time.Time { return v.Limit }, desc)
		return nil
	case SortByCreatedAt:
		sortByTimeDirection(views, func(v *domain.RequestView) *time.Time {
			if t, ok := domain.ParseTimestamp(v.CreatedAt, time.UTC); ok {
				return &t
			}
			return nil
		}, desc)
		return nil
	case SortByDaysRemaining:
		sort.SliceStable(views, func(i, j int) bool {
			a, b := views[i].DaysRemaining, views[j].DaysRemaining
			if a == nil || b == nil {
				return a != nil
			}
			if desc {
				return *a > *b
			}
			return *a < *b
		})
		return nil
	default:
		return fmt.Errorf("cannot sort by %q", key)
	}

	sort.SliceStable(views, func(i, j int) bool {
		if desc {
			return less(views[j], views[i])
		}
		return less(views[i], views[j])
	})
	return nil
}

// Summary counts views per status and per urgency bucket, ignoring cancelled ones for
// the bucket counts.
func Summary(views []*domain.RequestView) domain.DashboardSummary {
	s := domain.DashboardSummary{
		Total:    len(views),
		ByStatus: map[domain.RequestStatus]int{},
		ByBucket: map[domain.ColorBucket]int{},
	}
	for _, v := range views {
		s.ByStatus[v.Status]++
		if v.Status == domain.RequestStatusCancelled {
			continue
		}
		s.ByBucket[v.Bucket]++
		if v.TimeConflict {
			s.Conflicts++
		}
	}
	return s
}

func statusRank(s domain.RequestStatus) int {
	for i, st := range domain.AllRequestStatuses {
		if st == s {
			return i
		}
	}
	return len(domain.AllRequestStatuses)
}

func filter(views []*domain.RequestView, keep func(*domain.RequestView) bool) []*domain.RequestView {
	out := make([]*domain.RequestView, 0, len(views))
	for _, v := range views {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func sortByTime(views []*domain.RequestView, key func(*domain.RequestView) *time.Time) {
	sortByTimeDirection(views, key, false)
}

func sortByTimeDirection(views []*domain.RequestView, key func(*domain.RequestView) *time.Time, desc bool) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := key(views[i]), key(views[j])
		if a == nil || b == nil {
			return a != nil
		}
		if desc {
			return a.After(*b)
		}
		return a.Before(*b)
	})
}

func head(views []*domain.RequestView, limit int) []*domain.RequestView {
	if limit > 0 && len(views) > limit {
		return views[:limit]
	}
	return views
}
