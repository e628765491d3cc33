package domain

import "time"

type ColorBucket string

const (
	BucketConflict ColorBucket = "conflict"
	BucketNeutral  ColorBucket = "neutral"
	BucketOverdue  ColorBucket = "overdue"
	BucketDueToday ColorBucket = "due_today"
	BucketUrgent   ColorBucket = "urgent"
	BucketNear     ColorBucket = "near"
	BucketNormal   ColorBucket = "normal"
)

// AllColorBuckets is ordered from most to least pressing.
var AllColorBuckets = []ColorBucket{
	BucketConflict,
	BucketOverdue,
	BucketDueToday,
	BucketUrgent,
	BucketNear,
	BucketNormal,
	BucketNeutral,
}

// RequestView is a request plus the fields derived from it at a given instant. It is
// recomputed from the synced records on every read and never stored.
type RequestView struct {
	Request `json:",inline" yaml:",inline"`

	Start             *time.Time  `json:"start,omitempty" yaml:"start,omitempty"`
	Limit             *time.Time  `json:"limit,omitempty" yaml:"limit,omitempty"`
	EstimatedEnd      *time.Time  `json:"estimated_end,omitempty" yaml:"estimated_end,omitempty"`
	ExpectedStartTime *time.Time  `json:"expected_start_time,omitempty" yaml:"expected_start_time,omitempty"`
	DaysRemaining     *int        `json:"days_remaining" yaml:"days_remaining"`
	EstimatedHours    *int        `json:"estimated_hours,omitempty" yaml:"estimated_hours,omitempty"`
	TimeConflict      bool        `json:"time_conflict" yaml:"time_conflict"`
	Bucket            ColorBucket `json:"bucket" yaml:"bucket"`
}

// CalendarEntryKind tells a scheduled slot apart from a deadline marker.
type CalendarEntryKind string

const (
	CalendarEntryScheduled CalendarEntryKind = "scheduled"
	CalendarEntryDeadline  CalendarEntryKind = "deadline"
)

type CalendarEntry struct {
	Kind   CalendarEntryKind `json:"kind" yaml:"kind"`
	Start  time.Time         `json:"start" yaml:"start"`
	End    time.Time         `json:"end" yaml:"end"`
	Title  string            `json:"title" yaml:"title"`
	View   *RequestView      `json:"request" yaml:"request"`
	Bucket ColorBucket       `json:"bucket" yaml:"bucket"`
}

// DashboardSummary backs the status and urgency badges.
type DashboardSummary struct {
	Total     int                   `json:"total" yaml:"total"`
	ByStatus  map[RequestStatus]int `json:"by_status" yaml:"by_status"`
	ByBucket  map[ColorBucket]int   `json:"by_bucket" yaml:"by_bucket"`
	Conflicts int                   `json:"conflicts" yaml:"conflicts"`
}
