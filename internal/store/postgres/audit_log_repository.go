package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/goto/intake/domain"
	"github.com/goto/intake/internal/store/postgres/model"
	"github.com/goto/intake/pkg/audit"
)

// AuditLogRepository persists audit entries and serves the request history.
type AuditLogRepository struct {
	db *gorm.DB

	TimeNow func() time.Time
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db, TimeNow: time.Now}
}

func (r *AuditLogRepository) Log(ctx context.Context, action string, data interface{}) error {
	m, err := model.NewAuditLog(r.TimeNow(), action, audit.ActorFromContext(ctx), data)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *AuditLogRepository) List(ctx context.Context, filter *domain.ListAuditLogFilter) ([]*domain.AuditLog, error) {
	db := r.db.WithContext(ctx)

	if filter != nil {
		if len(filter.Actions) > 0 {
			db = db.Where(`"action" IN ?`, filter.Actions)
		}
		if filter.DocumentID != "" {
			db = db.Where(`"data" ->> 'document_id' = ?`, filter.DocumentID)
		}
		if filter.Limit > 0 {
			db = db.Limit(filter.Limit)
		}
	}
	db = db.Order(`"timestamp" DESC`)

	var records []*model.AuditLog
	if err := db.Find(&records).Error; err != nil {
		return nil, err
	}

	logs := make([]*domain.AuditLog, 0, len(records))
	for _, record := range records {
		l, err := record.ToDomain()
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}
