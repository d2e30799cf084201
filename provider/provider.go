package provider

import (
	"context"
	"strings"
)

type (
	// Provider is the polymorphic AI capability the pipeline is built on.
	// Concrete vendors are interchangeable; orchestration code never
	// branches on the backing vendor.
	Provider interface {
		// Name reports the backend name, for logging only.
		Name() string

		// Embed turns free text into a fixed-length vector.
		Embed(ctx context.Context, text string) ([]float32, error)

		// Generate produces one complete text response. Used for
		// follow-up questions and profile generation.
		Generate(ctx context.Context, system, user string) (string, error)

		// GenerateStream produces the reply as a lazily pulled sequence
		// of text fragments. The stream is finite and not restartable.
		GenerateStream(ctx context.Context, system, user string) (Stream, error)
	}

	// Stream is a cooperative pull sequence of text fragments. Consumers
	// call Next until it returns false, then check Err to distinguish
	// normal completion from transport or model failure. Fragments arrive
	// in emission order and their concatenation is the full reply.
	Stream interface {
		Next() bool
		Current() string
		Err() error
		Close() error
	}
)

// Collect drains a stream and returns the concatenation of its fragments.
func Collect(s Stream) (string, error) {
	var sb strings.Builder
	for s.Next() {
		sb.WriteString(s.Current())
	}
	if err := s.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
