package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/tymeless/legacychat/internal/mylog"
)

// Init installs a global tracer provider whose spans are mirrored into the
// process logger. Returns a shutdown function for graceful teardown.
func Init(logger *mylog.Logger, verbose bool) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(&spanLogger{
			logger:  logger,
			verbose: verbose,
		}),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
