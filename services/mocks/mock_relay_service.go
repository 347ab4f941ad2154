package mocks

import (
	"context"

	"go-shorturl-relay/types"

	"github.com/stretchr/testify/mock"
)

// MockRelayService is a mock RelayService interface
type MockRelayService struct {
	mock.Mock
}

func (m *MockRelayService) CreateShortURL(ctx context.Context, req types.RelayRequest) (types.UpstreamResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(types.UpstreamResponse), args.Error(1)
}
