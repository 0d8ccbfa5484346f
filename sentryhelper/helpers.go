// Package sentryhelper provides utilities for Sentry transaction and scope management.
// It ensures proper isolation of breadcrumbs and context per Discord command.
package sentryhelper

import (
	"context"
	"fmt"

	sentry "github.com/getsentry/sentry-go"
)

// contextKey is used to store the cloned hub in context
type contextKey string

const hubContextKey contextKey = "sentry_hub"

// StartCommandTransaction creates a new transaction with a cloned hub for a Discord command.
// The cloned hub ensures breadcrumbs and scope are isolated to this command only.
func StartCommandTransaction(ctx context.Context, commandName string, guildID string, userID string) (context.Context, *sentry.Span) {
	hub := sentry.CurrentHub().Clone()
	ctx = context.WithValue(ctx, hubContextKey, hub)

	transactionName := fmt.Sprintf("discord.command.%s", commandName)
	transaction := sentry.StartTransaction(ctx, transactionName,
		sentry.WithOpName("discord.command"),
		sentry.WithTransactionSource(sentry.SourceRoute),
	)

	transaction.SetTag("command", commandName)
	transaction.SetTag("guild_id", guildID)
	transaction.SetTag("user_id", userID)

	hub.Scope().SetSpan(transaction)

	return transaction.Context(), transaction
}

// HubFromContext retrieves the cloned hub from context.
// Falls back to CurrentHub if no cloned hub is found.
func HubFromContext(ctx context.Context) *sentry.Hub {
	if ctx == nil {
		return sentry.CurrentHub()
	}
	if hub, ok := ctx.Value(hubContextKey).(*sentry.Hub); ok && hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

// AddBreadcrumb adds a breadcrumb to the hub in context (isolated per-command).
func AddBreadcrumb(ctx context.Context, breadcrumb *sentry.Breadcrumb) {
	hub := HubFromContext(ctx)
	hub.AddBreadcrumb(breadcrumb, nil)
}

// CaptureException captures an exception on the hub in context.
func CaptureException(ctx context.Context, err error) *sentry.EventID {
	hub := HubFromContext(ctx)
	return hub.CaptureException(err)
}
