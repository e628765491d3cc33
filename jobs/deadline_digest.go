package jobs

import (
	"context"
	"fmt"

	defaults "github.com/mcuadros/go-defaults"

	"github.com/goto/intake/core/projection"
	"github.com/goto/intake/domain"
)

type DeadlineDigestConfig struct {
	Limit            int    `mapstructure:"limit" default:"5"`
	IncludeConflicts bool   `mapstructure:"include_conflicts"`
	Filter           string `mapstructure:"filter"`
}

// DeadlineDigest is what the job reports.
type DeadlineDigest struct {
	Overdue   int
	DueToday  int
	Conflicts int
	Upcoming  []*domain.RequestView
}

func (h *handler) DeadlineDigest(ctx context.Context, c Config) error {
	h.logger.Info(ctx, fmt.Sprintf("starting %q job", TypeDeadlineDigest))

	var cfg DeadlineDigestConfig
	defaults.SetDefaults(&cfg)
	if err := c.Decode(&cfg); err != nil {
		return fmt.Errorf("invalid config for %s job: %w", TypeDeadlineDigest, err)
	}

	views, err := h.views(ctx)
	if err != nil {
		return fmt.Errorf("loading requests: %w", err)
	}
	if cfg.Filter != "" {
		f, err := projection.CompileFilter(cfg.Filter)
		if err != nil {
			return fmt.Errorf("invalid filter for %s job: %w", TypeDeadlineDigest, err)
		}
		if views, err = f.Apply(views); err != nil {
			return fmt.Errorf("applying filter: %w", err)
		}
	}

	digest := buildDeadlineDigest(views, cfg)
	h.logger.Info(ctx, "deadline digest",
		"overdue", digest.Overdue,
		"due_today", digest.DueToday,
		"conflicts", digest.Conflicts,
	)
	for _, v := range digest.Upcoming {
		args := []interface{}{"document_id", v.DocumentID, "name", v.Name, "limit_date", v.LimitDate, "bucket", v.Bucket}
		if v.DaysRemaining != nil {
			args = append(args, "days_remaining", *v.DaysRemaining)
		}
		h.logger.Info(ctx, "upcoming deadline", args...)
	}
	return nil
}

func buildDeadlineDigest(views []*domain.RequestView, cfg DeadlineDigestConfig) DeadlineDigest {
	var d DeadlineDigest
	active := projection.Active(views)
	for _, v := range active {
		switch {
		case v.DaysRemaining == nil:
		case *v.DaysRemaining < 0:
			d.Overdue++
		case *v.DaysRemaining == 0:
			d.DueToday++
		}
		if v.TimeConflict {
			d.Conflicts++
		}
	}

	upcoming := projection.UpcomingDeadlines(views, 0)
	if !cfg.IncludeConflicts {
		kept := upcoming[:0]
		for _, v := range upcoming {
			if !v.TimeConflict {
				kept = append(kept, v)
			}
		}
		upcoming = kept
	}
	if cfg.Limit > 0 && len(upcoming) > cfg.Limit {
		upcoming = upcoming[:cfg.Limit]
	}
	d.Upcoming = upcoming
	return d
}
