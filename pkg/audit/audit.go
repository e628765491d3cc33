package audit

import (
	"context"

	"github.com/goto/intake/pkg/log"
)

type AuditLogger interface {
	Log(ctx context.Context, action string, data interface{}) error
}

type actorContextKey struct{}

// WithActor records who is driving the operations made with ctx.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	actor, _ := ctx.Value(actorContextKey{}).(string)
	return actor
}

// LogAuditLogger writes audit entries to the application log. It is used when no
// audit database is configured.
type LogAuditLogger struct {
	logger log.Logger
}

func NewLogAuditLogger(logger log.Logger) *LogAuditLogger {
	return &LogAuditLogger{logger: logger}
}

func (l *LogAuditLogger) Log(ctx context.Context, action string, data interface{}) error {
	l.logger.Info(ctx, "audit", "action", action, "actor", ActorFromContext(ctx), "data", data)
	return nil
}
