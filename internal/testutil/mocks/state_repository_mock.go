package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStateRepository is a mock implementation of repository.StateRepository
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) Load(ctx context.Context) (map[string][]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]byte), args.Error(1)
}

func (m *MockStateRepository) Save(ctx context.Context, sections map[string][]byte) error {
	args := m.Called(ctx, sections)
	return args.Error(0)
}

func (m *MockStateRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
