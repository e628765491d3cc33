package projection

import (
	"sort"
	"time"

	"github.com/goto/intake/domain"
)

// DefaultSlot is the length given to a scheduled entry with no usable end.
const DefaultSlot = time.Hour

// Calendar places non-cancelled requests between from and to: one scheduled entry per
// request with a start date, one deadline marker per request with a deadline.
func Calendar(views []*domain.RequestView, from, to time.Time) []domain.CalendarEntry {
	var entries []domain.CalendarEntry
	for _, v := range views {
		if v.Status == domain.RequestStatusCancelled {
			continue
		}

		if v.Start != nil {
			end := v.Start.Add(DefaultSlot)
			if v.EstimatedEnd != nil && v.EstimatedEnd.After(*v.Start) {
				end = *v.EstimatedEnd
			}
			if v.Start.Before(to) && end.After(from) {
				entries = append(entries, domain.CalendarEntry{
					Kind:   domain.CalendarEntryScheduled,
					Start:  *v.Start,
					End:    end,
					Title:  title(v),
					View:   v,
					Bucket: v.Bucket,
				})
			}
		}

		if v.Limit != nil && !v.Limit.Before(from) && v.Limit.Before(to) {
			entries = append(entries, domain.CalendarEntry{
				Kind:   domain.CalendarEntryDeadline,
				Start:  *v.Limit,
				End:    *v.Limit,
				Title:  title(v),
				View:   v,
				Bucket: v.Bucket,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start.Before(entries[j].Start)
	})
	return entries
}

// Week returns the Monday-to-Sunday range containing t.
func Week(t time.Time) (from, to time.Time) {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(midnight.Weekday()) + 6) % 7
	from = midnight.AddDate(0, 0, -offset)
	return from, from.AddDate(0, 0, 7)
}

func title(v *domain.RequestView) string {
	if v.Name == "" {
		return "Untitled"
	}
	return v.Name
}
