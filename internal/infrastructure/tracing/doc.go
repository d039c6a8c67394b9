/*
Package tracing provides lightweight request tracing.

Each HTTP request gets a span; handlers open child spans for shell commands and
filesystem mutations. Finished spans are written to the structured log by a
single collector goroutine.

# Usage

	tracer := tracing.New("aurora", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "shell.execute")
	span.SetTag("command", name)
	span.Finish()
	tracer.Submit(span)

# Propagation

Clients may send X-Trace-ID and X-Span-ID to join an existing trace. Both are
echoed on every response.
*/
package tracing
