package mocks

import (
	"context"

	"go-shorturl-relay/types"

	"github.com/stretchr/testify/mock"
)

// MockTransport is a mock controller.Transport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Shorten(ctx context.Context, req types.NormalizedRequest) ([]byte, error) {
	args := m.Called(ctx, req)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}
