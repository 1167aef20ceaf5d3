// Package mocks provides mock implementations of the drink use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	drinkDomain "github.com/allisson/coffeeshop/internal/drink/domain"
)

// MockDrinkRepository is a mock implementation of DrinkRepository.
type MockDrinkRepository struct {
	mock.Mock
}

// List mocks the List method of DrinkRepository.
func (m *MockDrinkRepository) List(ctx context.Context) ([]*drinkDomain.Drink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*drinkDomain.Drink), args.Error(1)
}

// Get mocks the Get method of DrinkRepository.
func (m *MockDrinkRepository) Get(ctx context.Context, id int64) (*drinkDomain.Drink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drinkDomain.Drink), args.Error(1)
}

// Create mocks the Create method of DrinkRepository.
func (m *MockDrinkRepository) Create(ctx context.Context, drink *drinkDomain.Drink) error {
	args := m.Called(ctx, drink)
	return args.Error(0)
}

// Update mocks the Update method of DrinkRepository.
func (m *MockDrinkRepository) Update(ctx context.Context, drink *drinkDomain.Drink) error {
	args := m.Called(ctx, drink)
	return args.Error(0)
}

// Delete mocks the Delete method of DrinkRepository.
func (m *MockDrinkRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// DeleteAll mocks the DeleteAll method of DrinkRepository.
func (m *MockDrinkRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockDrinkUseCase is a mock implementation of DrinkUseCase.
type MockDrinkUseCase struct {
	mock.Mock
}

// List mocks the List method of DrinkUseCase.
func (m *MockDrinkUseCase) List(ctx context.Context) ([]*drinkDomain.Drink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*drinkDomain.Drink), args.Error(1)
}

// Create mocks the Create method of DrinkUseCase.
func (m *MockDrinkUseCase) Create(
	ctx context.Context,
	input drinkDomain.CreateDrinkInput,
) (*drinkDomain.Drink, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drinkDomain.Drink), args.Error(1)
}

// Update mocks the Update method of DrinkUseCase.
func (m *MockDrinkUseCase) Update(
	ctx context.Context,
	id int64,
	input drinkDomain.UpdateDrinkInput,
) (*drinkDomain.Drink, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drinkDomain.Drink), args.Error(1)
}

// Delete mocks the Delete method of DrinkUseCase.
func (m *MockDrinkUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Seed mocks the Seed method of DrinkUseCase.
func (m *MockDrinkUseCase) Seed(ctx context.Context, reset bool) ([]*drinkDomain.Drink, error) {
	args := m.Called(ctx, reset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*drinkDomain.Drink), args.Error(1)
}
