package projection

import (
	"math"
	"strings"
	"time"

	"github.com/goto/intake/domain"
)

const day = 24 * time.Hour

// Projector derives display fields from raw request records. It holds no state besides
// the zone used to read dates without an offset.
type Projector struct {
	loc *time.Location
}

func NewProjector(loc *time.Location) *Projector {
	if loc == nil {
		loc = time.Local
	}
	return &Projector{loc: loc}
}

// Project maps every record to a view, dropping nil entries. Malformed fields never
// fail the projection; they only leave the derived fields empty.
func (p *Projector) Project(records []*domain.Request, now time.Time) []*domain.RequestView {
	views := make([]*domain.RequestView, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		views = append(views, p.ProjectOne(r, now))
	}
	return views
}

func (p *Projector) ProjectOne(r *domain.Request, now time.Time) *domain.RequestView {
	v := &domain.RequestView{Request: *r.Clone()}

	if t, ok := domain.ParseTimestamp(r.StartDate, p.loc); ok {
		v.Start = &t
		v.ExpectedStartTime = &t
	}
	if t, ok := p.parseDeadline(r.LimitDate); ok {
		v.Limit = &t
	}
	if t, ok := domain.ParseTimestamp(r.EstimatedEndDate, p.loc); ok {
		v.EstimatedEnd = &t
	}

	if v.Limit != nil {
		days := int(math.Floor(float64(v.Limit.Sub(now)) / float64(day)))
		v.DaysRemaining = &days
		if v.EstimatedEnd != nil && v.EstimatedEnd.After(*v.Limit) {
			v.TimeConflict = true
		}
	}
	if v.Start != nil && v.EstimatedEnd != nil {
		hours := int(v.EstimatedEnd.Sub(*v.Start).Hours())
		v.EstimatedHours = &hours
	}

	v.Bucket = Bucket(v)
	return v
}

// parseDeadline reads a date-only deadline as the end of that day.
func (p *Projector) parseDeadline(raw string) (time.Time, bool) {
	t, ok := domain.ParseTimestamp(raw, p.loc)
	if !ok {
		return time.Time{}, false
	}
	if isDateOnly(raw) {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, true
}

func isDateOnly(raw string) bool {
	raw = strings.TrimSpace(raw)
	if len(raw) != len("2006-01-02") {
		return false
	}
	_, err := time.Parse("2006-01-02", raw)
	return err == nil
}

// Bucket picks the urgency color. The order of the checks is significant: a conflict
// wins over any deadline distance.
func Bucket(v *domain.RequestView) domain.ColorBucket {
	switch {
	case v.TimeConflict:
		return domain.BucketConflict
	case v.DaysRemaining == nil:
		return domain.BucketNeutral
	case *v.DaysRemaining < 0:
		return domain.BucketOverdue
	case *v.DaysRemaining == 0:
		return domain.BucketDueToday
	case *v.DaysRemaining <= 2:
		return domain.BucketUrgent
	case *v.DaysRemaining <= 4:
		return domain.BucketNear
	default:
		return domain.BucketNormal
	}
}
