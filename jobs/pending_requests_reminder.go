package jobs

import (
	"context"
	"fmt"
	"sort"
	"time"

	defaults "github.com/mcuadros/go-defaults"

	"github.com/goto/intake/core/projection"
	"github.com/goto/intake/domain"
)

type PendingRequestsReminderConfig struct {
	// OlderThan skips requests submitted more recently.
	OlderThan time.Duration `mapstructure:"older_than"`
	// GroupBy is either "department" or "responsible".
	GroupBy string `mapstructure:"group_by" default:"department"`
}

type PendingGroup struct {
	Key      string
	Requests []*domain.RequestView
}

func (h *handler) PendingRequestsReminder(ctx context.Context, c Config) error {
	h.logger.Info(ctx, "running pending requests reminder job")

	var cfg PendingRequestsReminderConfig
	defaults.SetDefaults(&cfg)
	if err := c.Decode(&cfg); err != nil {
		return fmt.Errorf("invalid config for %s job: %w", TypePendingRequestsReminder, err)
	}
	if cfg.GroupBy != "department" && cfg.GroupBy != "responsible" {
		return fmt.Errorf("invalid config for %s job: unsupported group_by %q", TypePendingRequestsReminder, cfg.GroupBy)
	}

	h.logger.Info(ctx, "retrieving pending requests...")
	views, err := h.views(ctx)
	if err != nil {
		h.logger.Info(ctx, "failed to retrieve pending requests")
		return err
	}

	groups := groupPendingRequests(views, cfg, h.TimeNow())
	for _, g := range groups {
		h.logger.Info(ctx, "pending requests", cfg.GroupBy, g.Key, "count", len(g.Requests), "oldest", g.Requests[0].DocumentID)
	}

	h.logger.Info(ctx, "pending requests reminder done", "groups", len(groups))
	return nil
}

// groupPendingRequests buckets pending requests by key, each group oldest first, groups
// sorted by key.
func groupPendingRequests(views []*domain.RequestView, cfg PendingRequestsReminderConfig, now time.Time) []PendingGroup {
	pending := projection.ByStatus(views, domain.RequestStatusPending)
	projection.Sort(pending, projection.SortByStartDate, false) //nolint:errcheck

	byKey := map[string][]*domain.RequestView{}
	for _, v := range pending {
		if cfg.OlderThan > 0 && v.Start != nil && now.Sub(*v.Start) < cfg.OlderThan {
			continue
		}
		key := v.Department
		if cfg.GroupBy == "responsible" {
			key = v.Responsible
		}
		byKey[key] = append(byKey[key], v)
	}

	groups := make([]PendingGroup, 0, len(byKey))
	for k, reqs := range byKey {
		groups = append(groups, PendingGroup{Key: k, Requests: reqs})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}
