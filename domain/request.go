package domain

import (
	"errors"
	"strings"
	"time"
)

type RequestStatus string

const (
	RequestStatusUnknown   RequestStatus = ""
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusInProcess RequestStatus = "in_process"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusCancelled RequestStatus = "cancelled"

	RequestActionCreate  = "create"
	RequestActionApprove = "approve"
	RequestActionAdvance = "advance"
	RequestActionCancel  = "cancel"
	RequestActionUpdate  = "update"
)

var (
	ErrUnknownRequestStatus = errors.New("unknown request status")
	ErrNoForwardTransition  = errors.New("status has no forward successor")
)

// forwardSteps is the only path a request may take. Cancelled is reachable from any
// non-terminal step and is handled separately.
var forwardSteps = map[RequestStatus]RequestStatus{
	RequestStatusPending:   RequestStatusApproved,
	RequestStatusApproved:  RequestStatusInProcess,
	RequestStatusInProcess: RequestStatusCompleted,
}

var requestStatusLabels = map[RequestStatus]string{
	RequestStatusPending:   "Pending",
	RequestStatusApproved:  "Approved",
	RequestStatusInProcess: "In Process",
	RequestStatusCompleted: "Completed",
	RequestStatusCancelled: "Cancelled",
}

// AllRequestStatuses lists the known statuses in workflow order.
var AllRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusApproved,
	RequestStatusInProcess,
	RequestStatusCompleted,
	RequestStatusCancelled,
}

// ParseRequestStatus normalizes the free-form status strings stored by the CMS
// ("Pending", "approved", "In Process", "in_progress", "Canceled", ...).
func ParseRequestStatus(s string) (RequestStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)

	switch key {
	case "pending":
		return RequestStatusPending, nil
	case "approved":
		return RequestStatusApproved, nil
	case "inprocess", "inprogress":
		return RequestStatusInProcess, nil
	case "completed":
		return RequestStatusCompleted, nil
	case "cancelled", "canceled":
		return RequestStatusCancelled, nil
	}
	return RequestStatusUnknown, ErrUnknownRequestStatus
}

// Label is the value written back to the CMS.
func (s RequestStatus) Label() string {
	if l, ok := requestStatusLabels[s]; ok {
		return l
	}
	return "Unknown"
}

func (s RequestStatus) String() string {
	return string(s)
}

func (s RequestStatus) IsKnown() bool {
	_, ok := requestStatusLabels[s]
	return ok
}

func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusCancelled
}

// IsActive reports whether the request still counts toward the work in flight.
func (s RequestStatus) IsActive() bool {
	return s.IsKnown() && !s.IsTerminal()
}

// Next returns the single legal forward successor.
func (s RequestStatus) Next() (RequestStatus, error) {
	next, ok := forwardSteps[s]
	if !ok {
		return RequestStatusUnknown, ErrNoForwardTransition
	}
	return next, nil
}

func (s RequestStatus) CanCancel() bool {
	return s.IsActive()
}

// Request mirrors the subset of the CMS record this application reads and writes.
// Date fields hold the raw strings the CMS returned; see ParseTimestamp.
type Request struct {
	DocumentID       string                 `json:"document_id" yaml:"document_id"`
	Name             string                 `json:"name" yaml:"name"`
	Email            string                 `json:"email" yaml:"email"`
	GlobalID         string                 `json:"global_id,omitempty" yaml:"global_id,omitempty"`
	Department       string                 `json:"department,omitempty" yaml:"department,omitempty"`
	Status           RequestStatus          `json:"status" yaml:"status"`
	RawStatus        string                 `json:"-" yaml:"-"`
	StartDate        string                 `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	LimitDate        string                 `json:"limit_date,omitempty" yaml:"limit_date,omitempty"`
	EstimatedEndDate string                 `json:"estimated_end_date,omitempty" yaml:"estimated_end_date,omitempty"`
	Responsible      string                 `json:"responsible,omitempty" yaml:"responsible,omitempty"`
	Progress         string                 `json:"progress,omitempty" yaml:"progress,omitempty"`
	CancelInfo       string                 `json:"cancel_info,omitempty" yaml:"cancel_info,omitempty"`
	Details          map[string]interface{} `json:"request_details,omitempty" yaml:"request_details,omitempty"`

	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Clone returns a copy that shares nothing mutable with r.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	c := *r
	if r.Details != nil {
		c.Details = make(map[string]interface{}, len(r.Details))
		for k, v := range r.Details {
			c.Details[k] = v
		}
	}
	return &c
}

// Schedule is the working window assigned on approval or update.
type Schedule struct {
	Start time.Time `json:"start" yaml:"start" validate:"required"`
	End   time.Time `json:"end" yaml:"end" validate:"required,gtfield=Start"`
}

// RequestPatch is a partial update; nil fields are left untouched by the CMS merge.
type RequestPatch struct {
	Status           *RequestStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Responsible      *string        `json:"responsible,omitempty" yaml:"responsible,omitempty"`
	Progress         *string        `json:"progress,omitempty" yaml:"progress,omitempty"`
	CancelInfo       *string        `json:"cancel_info,omitempty" yaml:"cancel_info,omitempty"`
	StartDate        *time.Time     `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EstimatedEndDate *time.Time     `json:"estimated_end_date,omitempty" yaml:"estimated_end_date,omitempty"`
}

func (p RequestPatch) IsEmpty() bool {
	return p.Status == nil &&
		p.Responsible == nil &&
		p.Progress == nil &&
		p.CancelInfo == nil &&
		p.StartDate == nil &&
		p.EstimatedEndDate == nil
}

// WithSchedule sets both ends of the working window.
func (p RequestPatch) WithSchedule(s *Schedule) RequestPatch {
	if s == nil {
		return p
	}
	start, end := s.Start, s.End
	p.StartDate = &start
	p.EstimatedEndDate = &end
	return p
}

// ApplyTo returns a copy of r with the patch merged field by field, the same way the
// CMS merges a partial PUT.
func (p RequestPatch) ApplyTo(r *Request) *Request {
	out := r.Clone()
	if out == nil {
		out = &Request{}
	}
	if p.Status != nil {
		out.Status = *p.Status
		out.RawStatus = p.Status.Label()
	}
	if p.Responsible != nil {
		out.Responsible = *p.Responsible
	}
	if p.Progress != nil {
		out.Progress = *p.Progress
	}
	if p.CancelInfo != nil {
		out.CancelInfo = *p.CancelInfo
	}
	if p.StartDate != nil {
		out.StartDate = FormatTimestamp(*p.StartDate)
	}
	if p.EstimatedEndDate != nil {
		out.EstimatedEndDate = FormatTimestamp(*p.EstimatedEndDate)
	}
	return out
}

// RequestUpdate carries the non-status fields staff may change on an active request.
type RequestUpdate struct {
	Responsible *string   `json:"responsible,omitempty" yaml:"responsible,omitempty"`
	Progress    *string   `json:"progress,omitempty" yaml:"progress,omitempty"`
	Schedule    *Schedule `json:"schedule,omitempty" yaml:"schedule,omitempty"`
}

// RequestSubmission is what a requester fills in on the intake form.
type RequestSubmission struct {
	Name       string                 `json:"name" yaml:"name" validate:"required"`
	Email      string                 `json:"email" yaml:"email" validate:"required,email"`
	GlobalID   string                 `json:"global_id,omitempty" yaml:"global_id,omitempty"`
	Department string                 `json:"department,omitempty" yaml:"department,omitempty"`
	LimitDate  *time.Time             `json:"limit_date,omitempty" yaml:"limit_date,omitempty"`
	Details    map[string]interface{} `json:"request_details" yaml:"request_details"`
}

// ToRequest builds the initial record; every new request starts as pending.
func (s RequestSubmission) ToRequest(now time.Time) *Request {
	r := &Request{
		Name:       s.Name,
		Email:      s.Email,
		GlobalID:   s.GlobalID,
		Department: s.Department,
		Status:     RequestStatusPending,
		RawStatus:  RequestStatusPending.Label(),
		StartDate:  FormatTimestamp(now),
		Details:    map[string]interface{}{},
	}
	if s.LimitDate != nil {
		r.LimitDate = FormatDeadline(*s.LimitDate)
	}
	for k, v := range s.Details {
		r.Details[k] = v
	}
	return r
}
