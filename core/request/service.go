package request

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/goto/intake/core/projection"
	"github.com/goto/intake/domain"
	"github.com/goto/intake/pkg/audit"
	"github.com/goto/intake/pkg/diff"
	"github.com/goto/intake/pkg/log"
)

const (
	AuditKeyCreate  = "request.create"
	AuditKeyApprove = "request.approve"
	AuditKeyAdvance = "request.advance"
	AuditKeyCancel  = "request.cancel"
	AuditKeyUpdate  = "request.update"

	DefaultTimeout = 15 * time.Second

	meterName = "github.com/goto/intake/core/request"
)

var auditKeys = map[string]string{
	domain.RequestActionCreate:  AuditKeyCreate,
	domain.RequestActionApprove: AuditKeyApprove,
	domain.RequestActionAdvance: AuditKeyAdvance,
	domain.RequestActionCancel:  AuditKeyCancel,
	domain.RequestActionUpdate:  AuditKeyUpdate,
}

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	List(context.Context) ([]*domain.Request, error)
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	Create(context.Context, *domain.Request) (*domain.Request, error)
	Update(ctx context.Context, id string, patch domain.RequestPatch) (*domain.Request, error)
}

//go:generate mockery --name=auditLogger --exported --with-expecter
type auditLogger interface {
	Log(ctx context.Context, action string, data interface{}) error
}

type ServiceDeps struct {
	Repository   repository
	Cache        *Cache
	WorkingHours domain.WorkingHours
	Timeout      time.Duration

	Validator   *validator.Validate
	Logger      log.Logger
	AuditLogger auditLogger
}

// Service drives the request workflow: every change is sent to the remote store first
// and the local cache is reconciled only with what the store confirmed.
type Service struct {
	repo      repository
	cache     *Cache
	hours     domain.WorkingHours
	timeout   time.Duration
	projector *projection.Projector
	inflight  *inflight

	validator   *validator.Validate
	logger      log.Logger
	auditLogger auditLogger
	transitions metric.Int64Counter
	audits      sync.WaitGroup

	TimeNow func() time.Time
}

func NewService(deps ServiceDeps) *Service {
	cache := deps.Cache
	if cache == nil {
		cache = NewCache()
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	v := deps.Validator
	if v == nil {
		v = validator.New()
	}
	hours := deps.WorkingHours
	loc := hours.Location()

	s := &Service{
		repo:      deps.Repository,
		cache:     cache,
		hours:     hours,
		timeout:   timeout,
		projector: projection.NewProjector(loc),
		inflight:  newInflight(),

		validator:   v,
		logger:      deps.Logger,
		auditLogger: deps.AuditLogger,

		TimeNow: time.Now,
	}

	counter, err := otel.Meter(meterName).Int64Counter("intake.request.transitions",
		metric.WithDescription("request workflow transitions by action and outcome"))
	if err == nil {
		s.transitions = counter
	}
	return s
}

// Load fetches the full list from the remote store and replaces the cache with it.
func (s *Service) Load(ctx context.Context) ([]*domain.Request, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.repo.List(callCtx)
	if err != nil {
		err = s.remoteFailure(ctx, callCtx, "list", "", err)
		return nil, err
	}
	s.cache.Replace(records)
	s.logger.Debug(ctx, "requests loaded", "count", s.cache.Len())
	return s.cache.List(), nil
}

// Records returns the cached list.
func (s *Service) Records() []*domain.Request {
	return s.cache.List()
}

// Views projects the cached list at now.
func (s *Service) Views(now time.Time) []*domain.RequestView {
	return s.projector.Project(s.cache.List(), now)
}

func (s *Service) Projector() *projection.Projector {
	return s.projector
}

// IsBusy reports whether a transition for id is outstanding.
func (s *Service) IsBusy(id string) bool {
	return s.inflight.busy(id)
}

// Get reads one record from the remote store and refreshes its cache entry.
func (s *Service) Get(ctx context.Context, id string) (*domain.Request, error) {
	if id == "" {
		return nil, ErrEmptyDocumentID
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.repo.GetByID(callCtx, id)
	if err != nil {
		return nil, s.remoteFailure(ctx, callCtx, "get", id, err)
	}
	s.cache.Put(r)
	return r.Clone(), nil
}

// Create validates a submission against the form schema and stores it as pending.
func (s *Service) Create(ctx context.Context, sub domain.RequestSubmission, schema domain.FieldSchema) (*domain.Request, error) {
	if err := s.validator.Struct(sub); err != nil {
		return nil, toValidationError(err)
	}
	if err := schema.Validate(sub.Details); err != nil {
		return nil, ValidationError{Field: "request_details", Err: err}
	}

	record := sub.ToRequest(s.TimeNow())

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	created, err := s.repo.Create(callCtx, record)
	if err != nil {
		s.record(ctx, domain.RequestActionCreate, "failure")
		return nil, s.remoteFailure(ctx, callCtx, domain.RequestActionCreate, "", err)
	}
	if created == nil || created.DocumentID == "" {
		s.record(ctx, domain.RequestActionCreate, "failure")
		return nil, RemoteCallFailure{Op: domain.RequestActionCreate, Err: errors.New("remote store returned no document id")}
	}
	if err := s.cache.Reconcile(created, record); err != nil {
		return nil, fmt.Errorf("reconciling created request: %w", err)
	}

	result, _ := s.cache.Get(created.DocumentID)
	s.record(ctx, domain.RequestActionCreate, "success")
	s.logger.Info(ctx, "request created", "document_id", result.DocumentID)
	s.audit(ctx, domain.RequestActionCreate, nil, result)
	return result, nil
}

// Advance moves an approved or in-process request one step forward.
func (s *Service) Advance(ctx context.Context, id string) (*domain.Request, error) {
	release, err := s.begin(id)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := s.current(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == domain.RequestStatusPending {
		return nil, InvalidTransitionError{
			DocumentID: id,
			From:       current.Status,
			Action:     domain.RequestActionAdvance,
			Reason:     "pending requests are approved with an assignee and a schedule",
		}
	}
	next, err := current.Status.Next()
	if err != nil {
		return nil, InvalidTransitionError{
			DocumentID: id,
			From:       current.Status,
			Action:     domain.RequestActionAdvance,
			Reason:     err.Error(),
		}
	}

	return s.apply(ctx, domain.RequestActionAdvance, current, domain.RequestPatch{Status: &next})
}

// Approve assigns a responsible and a working window to a pending request. All three
// fields travel in one update so the record is never half approved.
func (s *Service) Approve(ctx context.Context, id, responsible string, schedule domain.Schedule) (*domain.Request, error) {
	responsible = strings.TrimSpace(responsible)
	if responsible == "" {
		return nil, ValidationError{Field: "responsible", Reason: "required"}
	}
	if err := s.validateSchedule(schedule); err != nil {
		return nil, err
	}

	release, err := s.begin(id)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := s.current(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.RequestStatusPending {
		return nil, InvalidTransitionError{
			DocumentID: id,
			From:       current.Status,
			Action:     domain.RequestActionApprove,
			Reason:     "only pending requests can be approved",
		}
	}

	approved := domain.RequestStatusApproved
	patch := domain.RequestPatch{
		Status:      &approved,
		Responsible: &responsible,
	}.WithSchedule(&schedule)
	return s.apply(ctx, domain.RequestActionApprove, current, patch)
}

// Cancel closes a non-terminal request and stores the reason with it.
func (s *Service) Cancel(ctx context.Context, id, reason string) (*domain.Request, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ValidationError{Field: "cancel_info", Reason: "a cancellation reason is required"}
	}

	release, err := s.begin(id)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := s.current(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanCancel() {
		return nil, InvalidTransitionError{
			DocumentID: id,
			From:       current.Status,
			Action:     domain.RequestActionCancel,
		}
	}

	cancelled := domain.RequestStatusCancelled
	return s.apply(ctx, domain.RequestActionCancel, current, domain.RequestPatch{
		Status:     &cancelled,
		CancelInfo: &reason,
	})
}

// UpdateProgress changes the assignee, progress note or schedule of an active request
// without touching its status.
func (s *Service) UpdateProgress(ctx context.Context, id string, update domain.RequestUpdate) (*domain.Request, error) {
	if update.Responsible == nil && update.Progress == nil && update.Schedule == nil {
		return nil, ValidationError{Field: "update", Reason: "nothing to update"}
	}
	if update.Schedule != nil {
		if err := s.validateSchedule(*update.Schedule); err != nil {
			return nil, err
		}
	}

	release, err := s.begin(id)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := s.current(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.IsActive() {
		return nil, InvalidTransitionError{
			DocumentID: id,
			From:       current.Status,
			Action:     domain.RequestActionUpdate,
		}
	}

	patch := domain.RequestPatch{
		Responsible: update.Responsible,
		Progress:    update.Progress,
	}.WithSchedule(update.Schedule)
	return s.apply(ctx, domain.RequestActionUpdate, current, patch)
}

func (s *Service) begin(id string) (func(), error) {
	if id == "" {
		return nil, ErrEmptyDocumentID
	}
	release, ok := s.inflight.acquire(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTransitionInFlight, id)
	}
	return release, nil
}

// current prefers the cached record, which is what the operator is looking at.
func (s *Service) current(ctx context.Context, id string) (*domain.Request, error) {
	if r, ok := s.cache.Get(id); ok {
		return r, nil
	}
	return s.Get(ctx, id)
}

func (s *Service) apply(ctx context.Context, action string, current *domain.Request, patch domain.RequestPatch) (*domain.Request, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	confirmed, err := s.repo.Update(callCtx, current.DocumentID, patch)
	if err != nil {
		s.record(ctx, action, "failure")
		return nil, s.remoteFailure(ctx, callCtx, action, current.DocumentID, err)
	}

	if err := s.cache.Reconcile(confirmed, patch.ApplyTo(current)); err != nil {
		return nil, fmt.Errorf("reconciling request %q: %w", current.DocumentID, err)
	}
	updated, _ := s.cache.Get(current.DocumentID)

	s.record(ctx, action, "success")
	s.logger.Info(ctx, "request transitioned",
		"document_id", current.DocumentID,
		"action", action,
		"from", current.Status,
		"to", updated.Status,
	)
	s.audit(ctx, action, current, updated)
	return updated, nil
}

func (s *Service) validateSchedule(schedule domain.Schedule) error {
	if err := s.validator.Struct(schedule); err != nil {
		return toValidationError(err)
	}
	if err := s.hours.ValidateSchedule(schedule); err != nil {
		return ValidationError{Field: "schedule", Err: err}
	}
	return nil
}

func (s *Service) remoteFailure(ctx, callCtx context.Context, op, id string, err error) error {
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		err = fmt.Errorf("%w after %s: %w", ErrRemoteTimeout, s.timeout, err)
	}
	s.logger.Error(ctx, "remote call failed", "op", op, "document_id", id, "error", err)
	return RemoteCallFailure{Op: op, DocumentID: id, Err: err}
}

func (s *Service) record(ctx context.Context, action, outcome string) {
	if s.transitions == nil {
		return
	}
	s.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	))
}

func (s *Service) audit(ctx context.Context, action string, before, after *domain.Request) {
	if s.auditLogger == nil {
		return
	}

	data := map[string]interface{}{
		"document_id": after.DocumentID,
		"status":      after.Status,
	}
	actor := audit.ActorFromContext(ctx)
	if actor != "" {
		data["actor"] = actor
	}
	if before != nil {
		data["previous_status"] = before.Status
		changelog, err := diff.Compare(before, after, diff.WithActor(actor), diff.Ignore("updated_at"))
		if err != nil {
			s.logger.Warn(ctx, "failed to compute changelog", "document_id", after.DocumentID, "error", err)
		} else {
			data["changelog"] = changelog
		}
	}

	s.audits.Add(1)
	go func() {
		defer s.audits.Done()
		ctx := context.WithoutCancel(ctx)
		if err := s.auditLogger.Log(ctx, auditKeys[action], data); err != nil {
			s.logger.Error(ctx, "failed to record audit log", "error", err, "document_id", after.DocumentID)
		}
	}()
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return ValidationError{Field: verrs[0].Field(), Reason: verrs[0].Tag()}
	}
	return ValidationError{Field: "input", Err: err}
}

// WaitAudits blocks until every audit entry queued so far has been written.
func (s *Service) WaitAudits() {
	s.audits.Wait()
}
