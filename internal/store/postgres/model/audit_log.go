package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/goto/intake/domain"
)

type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Timestamp time.Time `gorm:"autoCreateTime"`
	Action    string
	Actor     string
	Data      datatypes.JSON
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func NewAuditLog(timestamp time.Time, action, actor string, data interface{}) (*AuditLog, error) {
	m := &AuditLog{
		ID:        uuid.New(),
		Timestamp: timestamp,
		Action:    action,
		Actor:     actor,
	}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		m.Data = datatypes.JSON(b)
	}
	return m, nil
}

func (m *AuditLog) ToDomain() (*domain.AuditLog, error) {
	l := &domain.AuditLog{
		ID:        m.ID.String(),
		Timestamp: m.Timestamp,
		Action:    m.Action,
		Actor:     m.Actor,
	}
	if len(m.Data) > 0 {
		data := make(map[string]interface{})
		if err := json.Unmarshal(m.Data, &data); err != nil {
			return nil, err
		}
		l.Data = data
	}
	return l, nil
}
