/*
Package tracing propagates a trace ID across the console's hops.

A dashboard request's X-Trace-ID (or a fresh one) is attached to the request
context by HTTPMiddleware; the backend client injects it into every outbound
call, so console and backend log lines for one operation share an ID.

# Usage

	router.Use(tracing.HTTPMiddleware())

	span, ctx := tracing.StartSpan(ctx, "GET /api/campaigns")
	defer span.Finish(status, err)

	tracing.Inject(ctx, req.Header)
	logger.Info("done", tracing.Field(ctx))

Trace IDs are UUIDs; malformed inbound values are replaced.
*/
package tracing
