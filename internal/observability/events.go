package observability

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/rhyn0/anime-rest-api"

var (
	initOnce    sync.Once
	authEvents  metric.Int64Counter
	repoOps     metric.Int64Counter
	httpReqs    metric.Int64Counter
	versionBump metric.Int64Counter
)

func initCounters() {
	meter := otel.Meter(meterName)
	var firstErr error
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return c
	}
	authEvents = counter("auth_events_total",
		"Session flow outcomes by flow and result.")
	repoOps = counter("repository_operations_total",
		"Repository operation outcomes by table and operation.")
	httpReqs = counter("http_requests_total",
		"Handled HTTP requests by route and status class.")
	versionBump = counter("session_version_bumps_total",
		"Session version increments applied by logout.")
	if firstErr != nil {
		slog.Warn("create metric counters", "error", firstErr)
	}
}

// RecordAuthEvent counts one session-flow outcome, e.g. ("login", "success")
// or ("refresh", "invalid_token").
func RecordAuthEvent(ctx context.Context, flow, outcome string) {
	initOnce.Do(initCounters)
	if authEvents == nil {
		return
	}
	authEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("flow", flow),
		attribute.String("outcome", outcome),
	))
}

func RecordRepositoryOperation(ctx context.Context, table, operation, outcome string) {
	initOnce.Do(initCounters)
	if repoOps == nil {
		return
	}
	repoOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("table", table),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func RecordHTTPRequest(ctx context.Context, route string, status int) {
	initOnce.Do(initCounters)
	if httpReqs == nil {
		return
	}
	httpReqs.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
		attribute.Int("status", status),
	))
}

func RecordSessionVersionBump(ctx context.Context) {
	initOnce.Do(initCounters)
	if versionBump == nil {
		return
	}
	versionBump.Add(ctx, 1)
}
