package apperr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
)

// Handle logs an error that ends a command and prints a short hint for well known causes
func Handle(ctx context.Context, err error) {
	HandleTo(ctx, os.Stderr, err)
}

// HandleTo is Handle with an explicit writer for the hint
func HandleTo(ctx context.Context, w io.Writer, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)
	attrs := []any{"error", err}
	if goErr := goerr.Unwrap(err); goErr != nil {
		attrs = append(attrs, "values", goErr.Values())
	}
	logger.Error("application error", attrs...)

	if hint := Hint(err); hint != "" {
		_, _ = fmt.Fprintln(w, hint)
	}
}

// Hint returns a user facing message for errors the user can fix
func Hint(err error) string {
	switch {
	case errors.Is(err, model.ErrUnknownTab):
		return "Unknown tab. Available tabs: overview, prediction, modeling [comparison|architecture], about [research|technical|impact|awards|gallery]"
	case errors.Is(err, model.ErrUnknownModel):
		return "The dataset references an unknown model. Known models: arima, rf, ann"
	}
	return ""
}
