package domain

import "time"

// AuditLog is one recorded operation against a request or form.
type AuditLog struct {
	ID        string                 `json:"id" yaml:"id"`
	Timestamp time.Time              `json:"timestamp" yaml:"timestamp"`
	Action    string                 `json:"action" yaml:"action"`
	Actor     string                 `json:"actor,omitempty" yaml:"actor,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty" yaml:"data,omitempty"`
}

type ListAuditLogFilter struct {
	Actions    []string `mapstructure:"actions" validate:"omitempty,min=1"`
	DocumentID string   `mapstructure:"document_id"`
	Limit      int      `mapstructure:"limit" validate:"omitempty,min=0"`
}
