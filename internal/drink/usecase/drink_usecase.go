package usecase

import (
	"context"

	"github.com/allisson/coffeeshop/internal/database"
	drinkDomain "github.com/allisson/coffeeshop/internal/drink/domain"
	apperrors "github.com/allisson/coffeeshop/internal/errors"
	customValidation "github.com/allisson/coffeeshop/internal/validation"
)

// DefaultDrinks is the menu inserted by Seed.
var DefaultDrinks = []drinkDomain.CreateDrinkInput{
	{
		Title:  "water",
		Recipe: drinkDomain.Recipe{{Name: "water", Color: "blue", Parts: 1}},
	},
}

// drinkUseCase implements the DrinkUseCase interface.
type drinkUseCase struct {
	txManager database.TxManager
	drinkRepo DrinkRepository
}

// NewDrinkUseCase creates a new DrinkUseCase.
func NewDrinkUseCase(txManager database.TxManager, drinkRepo DrinkRepository) DrinkUseCase {
	return &drinkUseCase{
		txManager: txManager,
		drinkRepo: drinkRepo,
	}
}

// List returns every drink ordered by id.
func (d *drinkUseCase) List(ctx context.Context) ([]*drinkDomain.Drink, error) {
	return d.drinkRepo.List(ctx)
}

// Create validates the input and stores the new drink in a transaction.
func (d *drinkUseCase) Create(
	ctx context.Context,
	input drinkDomain.CreateDrinkInput,
) (*drinkDomain.Drink, error) {
	drink := &drinkDomain.Drink{
		Title:  input.Title,
		Recipe: input.Recipe,
	}
	if err := drink.Validate(); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	err := d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return d.drinkRepo.Create(txCtx, drink)
	})
	if err != nil {
		return nil, persistenceError(err)
	}

	return drink, nil
}

// Update loads the drink, applies the present fields and writes it back in one transaction.
func (d *drinkUseCase) Update(
	ctx context.Context,
	id int64,
	input drinkDomain.UpdateDrinkInput,
) (*drinkDomain.Drink, error) {
	var updated *drinkDomain.Drink

	err := d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		drink, err := d.drinkRepo.Get(txCtx, id)
		if err != nil {
			return err
		}

		input.Apply(drink)
		if err := drink.Validate(); err != nil {
			return customValidation.WrapValidationError(err)
		}

		if err := d.drinkRepo.Update(txCtx, drink); err != nil {
			return err
		}

		updated = drink
		return nil
	})
	if err != nil {
		return nil, persistenceError(err)
	}

	return updated, nil
}

// Delete removes the drink in one transaction, failing with ErrDrinkNotFound when absent.
func (d *drinkUseCase) Delete(ctx context.Context, id int64) error {
	err := d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := d.drinkRepo.Get(txCtx, id); err != nil {
			return err
		}
		return d.drinkRepo.Delete(txCtx, id)
	})
	return persistenceError(err)
}

// Seed inserts DefaultDrinks. With reset every existing drink is removed first.
func (d *drinkUseCase) Seed(ctx context.Context, reset bool) ([]*drinkDomain.Drink, error) {
	seeded := make([]*drinkDomain.Drink, 0, len(DefaultDrinks))

	err := d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if reset {
			if _, err := d.drinkRepo.DeleteAll(txCtx); err != nil {
				return err
			}
		}

		existing, err := d.drinkRepo.List(txCtx)
		if err != nil {
			return err
		}
		titles := make(map[string]struct{}, len(existing))
		for _, drink := range existing {
			titles[drink.Title] = struct{}{}
		}

		for _, input := range DefaultDrinks {
			if _, ok := titles[input.Title]; ok {
				continue
			}

			drink := &drinkDomain.Drink{Title: input.Title, Recipe: append(drinkDomain.Recipe{}, input.Recipe...)}
			if err := drink.Validate(); err != nil {
				return customValidation.WrapValidationError(err)
			}
			if err := d.drinkRepo.Create(txCtx, drink); err != nil {
				return err
			}
			seeded = append(seeded, drink)
		}
		return nil
	})
	if err != nil {
		return nil, persistenceError(err)
	}

	return seeded, nil
}

// persistenceError classifies any error that is not already a domain error as
// an unprocessable store failure.
func persistenceError(err error) error {
	switch {
	case err == nil:
		return nil
	case apperrors.Is(err, apperrors.ErrNotFound),
		apperrors.Is(err, apperrors.ErrInvalidInput),
		apperrors.Is(err, apperrors.ErrUnprocessable):
		return err
	default:
		return apperrors.Join(drinkDomain.ErrDrinkNotPersisted, err)
	}
}
