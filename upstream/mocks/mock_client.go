package mocks

import (
	"context"

	"go-shorturl-relay/types"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock upstream.Client
type MockClient struct {
	mock.Mock
}

func (m *MockClient) CreateShortURL(ctx context.Context, payload []byte) (types.UpstreamResponse, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(types.UpstreamResponse), args.Error(1)
}
