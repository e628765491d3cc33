package form

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"

	"github.com/goto/intake/domain"
	"github.com/goto/intake/pkg/log"
)

const (
	AuditKeyUpdateRequestBody = "request_body.update"
	AuditKeyCreateForm        = "request_form.create"
	AuditKeyUpdateForm        = "request_form.update"
	AuditKeyDeleteForm        = "request_form.delete"

	DefaultSchemaCacheTTL = 5 * time.Minute
	DefaultTimeout        = 15 * time.Second

	requestBodyCacheKey = "request_body"
)

//go:generate mockery --name=repository --exported --with-expecter
type repository interface {
	GetRequestBody(context.Context) (*domain.RequestBody, error)
	UpdateRequestBody(context.Context, *domain.RequestBody) (*domain.RequestBody, error)

	ListForms(context.Context) ([]*domain.RequestForm, error)
	GetForm(ctx context.Context, id string) (*domain.RequestForm, error)
	CreateForm(context.Context, *domain.RequestForm) (*domain.RequestForm, error)
	UpdateForm(ctx context.Context, id string, f *domain.RequestForm) (*domain.RequestForm, error)
	DeleteForm(ctx context.Context, id string) error
}

//go:generate mockery --name=auditLogger --exported --with-expecter
type auditLogger interface {
	Log(ctx context.Context, action string, data interface{}) error
}

type ServiceDeps struct {
	Repository     repository
	SchemaCacheTTL time.Duration
	Timeout        time.Duration

	Validator   *validator.Validate
	Logger      log.Logger
	AuditLogger auditLogger
}

// Service manages the general request body and the named request forms.
type Service struct {
	repo    repository
	cache   *cache.Cache
	timeout time.Duration

	validator   *validator.Validate
	logger      log.Logger
	auditLogger auditLogger
	audits      sync.WaitGroup
}

func NewService(deps ServiceDeps) *Service {
	ttl := deps.SchemaCacheTTL
	if ttl <= 0 {
		ttl = DefaultSchemaCacheTTL
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	v := deps.Validator
	if v == nil {
		v = validator.New()
	}
	return &Service{
		repo:    deps.Repository,
		cache:   cache.New(ttl, 2*ttl),
		timeout: timeout,

		validator:   v,
		logger:      deps.Logger,
		auditLogger: deps.AuditLogger,
	}
}

// GetSchema returns the field schema new requests are validated against.
func (s *Service) GetSchema(ctx context.Context) (domain.FieldSchema, error) {
	body, err := s.GetRequestBody(ctx)
	if err != nil {
		return nil, err
	}
	if len(body.Fields) == 0 {
		return nil, ErrEmptySchema
	}
	return body.Fields, nil
}

func (s *Service) GetRequestBody(ctx context.Context) (*domain.RequestBody, error) {
	if cached, ok := s.cache.Get(requestBodyCacheKey); ok {
		if body, ok := cached.(*domain.RequestBody); ok {
			return copyBody(body), nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := s.repo.GetRequestBody(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting request body: %w", err)
	}
	s.cache.SetDefault(requestBodyCacheKey, copyBody(body))
	return body, nil
}

// UpdateRequestBody changes the title and info text; the schema is left as is.
func (s *Service) UpdateRequestBody(ctx context.Context, title, info string) (*domain.RequestBody, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidForm)
	}

	current, err := s.GetRequestBody(ctx)
	if err != nil {
		return nil, err
	}
	next := copyBody(current)
	next.Title = title
	next.Info = info

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	updated, err := s.repo.UpdateRequestBody(callCtx, next)
	if err != nil {
		return nil, fmt.Errorf("updating request body: %w", err)
	}
	s.cache.SetDefault(requestBodyCacheKey, copyBody(updated))

	s.audit(ctx, AuditKeyUpdateRequestBody, map[string]interface{}{"title": updated.Title})
	return updated, nil
}

// InvalidateSchema drops the cached request body.
func (s *Service) InvalidateSchema() {
	s.cache.Delete(requestBodyCacheKey)
}

func (s *Service) ListForms(ctx context.Context) ([]*domain.RequestForm, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	forms, err := s.repo.ListForms(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing forms: %w", err)
	}
	return forms, nil
}

func (s *Service) GetForm(ctx context.Context, id string) (*domain.RequestForm, error) {
	if id == "" {
		return nil, ErrEmptyDocumentID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	f, err := s.repo.GetForm(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting form %q: %w", id, err)
	}
	return f, nil
}

// CreateForm starts a form with an empty schema.
func (s *Service) CreateForm(ctx context.Context, title string) (*domain.RequestForm, error) {
	f := &domain.RequestForm{Title: strings.TrimSpace(title), Fields: domain.FieldSchema{}}
	if err := s.validator.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidForm, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	created, err := s.repo.CreateForm(callCtx, f)
	if err != nil {
		return nil, fmt.Errorf("creating form: %w", err)
	}

	s.audit(ctx, AuditKeyCreateForm, map[string]interface{}{"document_id": created.DocumentID, "title": created.Title})
	return created, nil
}

// UpdateForm replaces the title, info and schema of an existing form.
func (s *Service) UpdateForm(ctx context.Context, f *domain.RequestForm) (*domain.RequestForm, error) {
	if f == nil || f.DocumentID == "" {
		return nil, ErrEmptyDocumentID
	}
	if err := s.validator.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidForm, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	updated, err := s.repo.UpdateForm(callCtx, f.DocumentID, f)
	if err != nil {
		return nil, fmt.Errorf("updating form %q: %w", f.DocumentID, err)
	}

	s.audit(ctx, AuditKeyUpdateForm, map[string]interface{}{"document_id": updated.DocumentID, "title": updated.Title, "fields": len(updated.Fields)})
	return updated, nil
}

func (s *Service) DeleteForm(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyDocumentID
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.DeleteForm(callCtx, id); err != nil {
		return fmt.Errorf("deleting form %q: %w", id, err)
	}

	s.audit(ctx, AuditKeyDeleteForm, map[string]interface{}{"document_id": id})
	return nil
}

func (s *Service) audit(ctx context.Context, action string, data map[string]interface{}) {
	if s.auditLogger == nil {
		return
	}
	s.audits.Add(1)
	go func() {
		defer s.audits.Done()
		ctx := context.WithoutCancel(ctx)
		if err := s.auditLogger.Log(ctx, action, data); err != nil {
			s.logger.Error(ctx, "failed to record audit log", "error", err, "action", action)
		}
	}()
}

func copyBody(b *domain.RequestBody) *domain.RequestBody {
	if b == nil {
		return nil
	}
	c := *b
	c.Fields = append(domain.FieldSchema(nil), b.Fields...)
	return &c
}

// WaitAudits blocks until every audit entry queued so far has been written.
func (s *Service) WaitAudits() {
	s.audits.Wait()
}
