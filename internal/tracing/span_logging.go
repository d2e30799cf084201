package tracing

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// attrValueLimit caps logged attribute values unless verbose is set. Prompt
// and memory-context attributes routinely run to kilobytes.
const attrValueLimit = 256

// spanLogger mirrors span lifecycle into the process logger at debug level.
type spanLogger struct {
	logger  *slog.Logger
	verbose bool
}

var _ sdktrace.SpanProcessor = (*spanLogger)(nil)

func (p *spanLogger) OnStart(ctx context.Context, s sdktrace.ReadWriteSpan) {
	p.logger.Debug("span start", p.spanArgs(s)...)
}

func (p *spanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	args := p.spanArgs(s)
	args = append(args, slog.Duration("duration", s.EndTime().Sub(s.StartTime())))
	if status := s.Status(); status.Code == codes.Error {
		args = append(args, slog.String("error", status.Description))
	}
	p.logger.Debug("span end", args...)
}

func (p *spanLogger) Shutdown(ctx context.Context) error   { return nil }
func (p *spanLogger) ForceFlush(ctx context.Context) error { return nil }

func (p *spanLogger) spanArgs(s sdktrace.ReadOnlySpan) []any {
	args := []any{slog.String("span", s.Name())}
	for _, attr := range s.Attributes() {
		value := attr.Value.Emit()
		if !p.verbose && len(value) > attrValueLimit {
			value = value[:attrValueLimit] + "..."
		}
		args = append(args, slog.String(string(attr.Key), value))
	}
	return args
}
