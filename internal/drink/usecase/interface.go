// Package usecase implements the drink menu business logic. Writes run inside a
// single transaction and every store failure surfaces as an unprocessable error.
package usecase

import (
	"context"

	drinkDomain "github.com/allisson/coffeeshop/internal/drink/domain"
)

// DrinkRepository defines the interface for Drink persistence operations.
type DrinkRepository interface {
	List(ctx context.Context) ([]*drinkDomain.Drink, error)
	Get(ctx context.Context, id int64) (*drinkDomain.Drink, error)
	Create(ctx context.Context, drink *drinkDomain.Drink) error
	Update(ctx context.Context, drink *drinkDomain.Drink) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

// DrinkUseCase defines the interface for drink menu business logic.
type DrinkUseCase interface {
	// List returns every drink on the menu.
	List(ctx context.Context) ([]*drinkDomain.Drink, error)
	// Create validates and stores a new drink.
	Create(ctx context.Context, input drinkDomain.CreateDrinkInput) (*drinkDomain.Drink, error)
	// Update applies the present fields of input to the drink identified by id.
	Update(ctx context.Context, id int64, input drinkDomain.UpdateDrinkInput) (*drinkDomain.Drink, error)
	// Delete removes the drink identified by id.
	Delete(ctx context.Context, id int64) error
	// Seed stores the default drinks, optionally removing every existing drink first.
	// Default drinks whose title already exists are left untouched.
	Seed(ctx context.Context, reset bool) ([]*drinkDomain.Drink, error)
}
