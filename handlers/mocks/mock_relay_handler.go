package mocks

import (
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockRelayHandler struct {
	mock.Mock
}

func (m *MockRelayHandler) ShortenURL(c *gin.Context) {
	m.Called(c)
}

func (m *MockRelayHandler) HealthCheck(c *gin.Context) {
	m.Called(c)
}
