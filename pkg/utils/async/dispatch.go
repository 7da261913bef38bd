package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Go runs handler in a goroutine with panic recovery. The returned channel
// receives the handler result, or an error describing the panic, then closes.
func Go(ctx context.Context, handler func(ctx context.Context) error) <-chan error {
	newCtx := newBackgroundContext(ctx)
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				ctxlog.From(newCtx).Error("Panic in background task",
					"recover", r,
					"stack", string(stack),
				)
				errCh <- goerr.New("panic in background task", goerr.V("recover", r))
			}
		}()

		errCh <- handler(newCtx)
	}()

	return errCh
}

// newBackgroundContext detaches from the caller's cancellation but keeps the logger
func newBackgroundContext(ctx context.Context) context.Context {
	return ctxlog.With(context.Background(), ctxlog.From(ctx))
}
