package httpapi

import (
	"context"
)

// serverBaseCtx is canceled when the process begins shutting down.
var serverBaseCtx = context.Background()

// SetBaseContext installs the process-level context joined into every ask.
// A nil ctx restores context.Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// joinContexts derives from req (keeping its values and deadline) and is also
// canceled when base is done. The returned cancel must be called when the
// handler ends to detach from base.
func joinContexts(base, req context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(req)
	stop := context.AfterFunc(base, func() { cancel(context.Cause(base)) })
	return ctx, func() {
		stop()
		cancel(context.Canceled)
	}
}
