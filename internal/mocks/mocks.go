// Package mocks holds testify mocks of the service and client interfaces
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantry-chef/internal/model"
	"github.com/pageza/pantry-chef/internal/service"
)

// MockProvider is a mock implementation of service.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) GenerateJSON(ctx context.Context, req service.StructuredRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) GenerateImage(ctx context.Context, prompt string) (*service.Image, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Image), args.Error(1)
}

// MockGenerationService is a mock implementation of service.IGenerationService
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) GenerateRecipes(ctx context.Context, ingredients []string) ([]model.Recipe, error) {
	args := m.Called(ctx, ingredients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockGenerationService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockGenerator is a mock of the client operations the application controller drives
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) RequestRecipes(ctx context.Context, ingredients []string) ([]model.Recipe, error) {
	args := m.Called(ctx, ingredients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockGenerator) RequestImage(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
