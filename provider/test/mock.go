package providertest

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tymeless/legacychat/provider"
)

type ProviderMock struct {
	mock.Mock
}

func (m *ProviderMock) Name() string {
	return "mock"
}

func (m *ProviderMock) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if v := args.Get(0); v != nil {
		return v.([]float32), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProviderMock) Generate(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

func (m *ProviderMock) GenerateStream(ctx context.Context, system, user string) (provider.Stream, error) {
	args := m.Called(ctx, system, user)
	if v := args.Get(0); v != nil {
		return v.(provider.Stream), args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	_ provider.Provider = (*ProviderMock)(nil)
)

// SliceStream replays a fixed fragment sequence and then ends with the
// configured error, or nil for normal completion.
type SliceStream struct {
	Fragments []string
	FailWith  error

	pos    int
	closed bool
}

var (
	_ provider.Stream = (*SliceStream)(nil)
)

func (s *SliceStream) Next() bool {
	if s.closed || s.pos >= len(s.Fragments) {
		return false
	}
	s.pos++
	return true
}

func (s *SliceStream) Current() string {
	return s.Fragments[s.pos-1]
}

func (s *SliceStream) Err() error {
	if s.pos >= len(s.Fragments) {
		return s.FailWith
	}
	return nil
}

func (s *SliceStream) Close() error {
	s.closed = true
	return nil
}
