package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/goto/intake/core/form"
	"github.com/goto/intake/core/request"
	"github.com/goto/intake/domain"
	"github.com/goto/intake/internal/store/postgres"
	"github.com/goto/intake/internal/store/strapi"
	"github.com/goto/intake/pkg/audit"
	"github.com/goto/intake/pkg/log"
)

type ServiceDeps struct {
	Config    *Config
	Logger    log.Logger
	Validator *validator.Validate
}

type Services struct {
	RequestService *request.Service
	FormService    *form.Service

	// AuditLogRepository is nil when no audit database is configured.
	AuditLogRepository *postgres.AuditLogRepository
	Store              *postgres.Store
}

func InitServices(deps ServiceDeps) (*Services, error) {
	client, err := strapi.NewClient(&deps.Config.CMS, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("initializing cms client: %w", err)
	}

	services := &Services{}

	var auditLogger audit.AuditLogger = audit.NewLogAuditLogger(deps.Logger)
	if deps.Config.DB.Enabled() {
		s, err := postgres.NewStore(&deps.Config.DB)
		if err != nil {
			return nil, fmt.Errorf("initializing audit store: %w", err)
		}
		services.Store = s
		services.AuditLogRepository = postgres.NewAuditLogRepository(s.DB())
		auditLogger = services.AuditLogRepository
	}

	services.RequestService = request.NewService(request.ServiceDeps{
		Repository:   strapi.NewRequestRepository(client),
		Cache:        request.NewCache(),
		WorkingHours: deps.Config.Workflow.WorkingHours,
		Timeout:      deps.Config.Workflow.TransitionTimeout,
		Validator:    deps.Validator,
		Logger:       deps.Logger,
		AuditLogger:  auditLogger,
	})
	services.FormService = form.NewService(form.ServiceDeps{
		Repository:     strapi.NewFormRepository(client),
		SchemaCacheTTL: deps.Config.Dashboard.SchemaCacheTTL,
		Timeout:        deps.Config.CMS.Timeout,
		Validator:      deps.Validator,
		Logger:         deps.Logger,
		AuditLogger:    auditLogger,
	})

	return services, nil
}

// Preload syncs the request list and the form schema concurrently. A missing schema
// is not fatal; details then render in key order.
func (s *Services) Preload(ctx context.Context) (domain.FieldSchema, error) {
	var schema domain.FieldSchema
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.RequestService.Load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		schema, err = s.FormService.GetSchema(gctx)
		if err != nil && !errors.Is(err, form.ErrEmptySchema) {
			return err
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return schema, nil
}

// Close flushes pending audit entries and releases the audit store.
func (s *Services) Close() error {
	s.RequestService.WaitAudits()
	s.FormService.WaitAudits()
	if s.Store != nil {
		return s.Store.Close()
	}
	return nil
}
