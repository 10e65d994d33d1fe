package audit

import (
	"context"
	"log/slog"
	"sort"

	"propaudit/pkg/platform/middleware/metadata"
	"propaudit/pkg/requestcontext"
)

// Emitter is the publishing side of the audit trail.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Record logs an audit event and forwards it to the emitter when one is
// configured. Emission failures are logged, never returned: audit is
// best-effort relative to the business operation.
func Record(ctx context.Context, logger *slog.Logger, emitter Emitter, event Event) {
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Category == "" {
		event.Category = AuditEvent(event.Action).Category()
	}
	if ip := metadata.GetClientIP(ctx); ip != "" {
		attrs := make(map[string]string, len(event.Attributes)+1)
		for k, v := range event.Attributes {
			attrs[k] = v
		}
		if _, set := attrs["client_ip"]; !set {
			attrs["client_ip"] = ip
		}
		event.Attributes = attrs
	}

	if logger != nil {
		args := []any{
			"event", event.Action,
			"log_type", "audit",
			"category", string(event.Category),
		}
		if !event.UserID.IsNil() {
			args = append(args, "user_id", event.UserID.String())
		}
		if event.Subject != "" {
			args = append(args, "subject", event.Subject)
		}
		if event.ActorID != "" {
			args = append(args, "actor_id", event.ActorID)
		}
		if event.Reason != "" {
			args = append(args, "reason", event.Reason)
		}
		if event.RequestID != "" {
			args = append(args, "request_id", event.RequestID)
		}
		keys := make([]string, 0, len(event.Attributes))
		for k := range event.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			args = append(args, k, event.Attributes[k])
		}
		logger.InfoContext(ctx, event.Action, args...)
	}

	if emitter == nil {
		return
	}
	if err := emitter.Emit(ctx, event); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "event", event.Action, "error", err)
	}
}
