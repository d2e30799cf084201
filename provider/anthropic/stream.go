package anthropic

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
	"github.com/tymeless/legacychat/provider"
)

// messageStream surfaces text deltas from the Messages event stream and
// drops every other event type.
type messageStream struct {
	stream  *ssestream.Stream[anthropic.MessageStreamEventUnion]
	current string
}

var _ provider.Stream = (*messageStream)(nil)

func (s *messageStream) Next() bool {
	for s.stream.Next() {
		event := s.stream.Current()
		switch event := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch delta := event.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if delta.Text == "" {
					continue
				}
				s.current = delta.Text
				return true
			}
		}
	}
	return false
}

func (s *messageStream) Current() string { return s.current }

func (s *messageStream) Err() error { return s.stream.Err() }

func (s *messageStream) Close() error { return s.stream.Close() }
