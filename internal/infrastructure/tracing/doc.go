/*
Package tracing provides lightweight request tracing logged through zap.

A trace is identified by X-Trace-ID and each hop by X-Span-ID. The HTTP
middleware continues a trace sent by the caller or starts a new one, and
outgoing calls to the language model carry the current IDs via Inject.

	tracer := tracing.New("planner", logger)
	defer tracer.Close()
	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "advisor.generate")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
*/
package tracing
