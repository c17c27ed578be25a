package usecase

import (
	"context"

	"github.com/xavierca1/waha-alert-relay/internal/infra/integration/waha"
)

type Forwarder interface {
	SendText(ctx context.Context, input waha.SendTextInput) (*waha.SendTextOutput, error)
}

// DiagnosticSink não pode bloquear nem falhar o fluxo principal.
type DiagnosticSink interface {
	Record(event string, data map[string]any)
}
