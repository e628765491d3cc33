package jobs

import (
	"context"
	"time"

	"github.com/goto/intake/domain"
	"github.com/goto/intake/pkg/log"
)

//go:generate mockery --name=requestService --exported --with-expecter
type requestService interface {
	Load(context.Context) ([]*domain.Request, error)
	Views(now time.Time) []*domain.RequestView
}

type handler struct {
	logger         log.Logger
	requestService requestService

	TimeNow func() time.Time
}

func NewHandler(logger log.Logger, requestService requestService) *handler {
	return &handler{
		logger:         logger,
		requestService: requestService,
		TimeNow:        time.Now,
	}
}

// Jobs maps every job type to its runner.
func (h *handler) Jobs() map[Type]func(context.Context, Config) error {
	return map[Type]func(context.Context, Config) error{
		TypeDeadlineDigest:          h.DeadlineDigest,
		TypePendingRequestsReminder: h.PendingRequestsReminder,
	}
}

func (h *handler) views(ctx context.Context) ([]*domain.RequestView, error) {
	if _, err := h.requestService.Load(ctx); err != nil {
		return nil, err
	}
	return h.requestService.Views(h.TimeNow()), nil
}
