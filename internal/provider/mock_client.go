package provider

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client using testify/mock.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Generate(ctx context.Context, model, prompt string, params GenerateParams) (Generation, error) {
	args := m.Called(ctx, model, prompt, params)
	return args.Get(0).(Generation), args.Error(1)
}
