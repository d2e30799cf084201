package openai

import (
	goopenai "github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"
	"github.com/tymeless/legacychat/provider"
)

// chatStream adapts the SSE chunk stream to the provider fragment contract,
// skipping chunks that carry no text delta.
type chatStream struct {
	stream  *ssestream.Stream[goopenai.ChatCompletionChunk]
	current string
}

var _ provider.Stream = (*chatStream)(nil)

func (s *chatStream) Next() bool {
	for s.stream.Next() {
		chunk := s.stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			s.current = delta
			return true
		}
	}
	return false
}

func (s *chatStream) Current() string { return s.current }

func (s *chatStream) Err() error { return s.stream.Err() }

func (s *chatStream) Close() error { return s.stream.Close() }
