package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger mencatat kejadian operasional tingkat server (start,
// shutdown). Bukan jalur notifikasi domain.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
