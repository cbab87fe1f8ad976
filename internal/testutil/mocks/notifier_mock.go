package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock implementation of services.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyChanged() {
	m.Called()
}

// MockConfirmer is a mock implementation of services.Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, action string) bool {
	args := m.Called(ctx, action)
	return args.Bool(0)
}
