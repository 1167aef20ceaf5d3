package domain

import (
	"github.com/allisson/coffeeshop/internal/errors"
)

// Drink-specific error definitions.
var (
	// ErrDrinkNotFound indicates no drink exists with the requested id.
	ErrDrinkNotFound = errors.Wrap(errors.ErrNotFound, "drink not found")

	// ErrDrinkTitleTaken indicates another drink already uses the title.
	ErrDrinkTitleTaken = errors.Wrap(errors.ErrUnprocessable, "drink title already exists")

	// ErrDrinkNotPersisted indicates the store rejected a write.
	ErrDrinkNotPersisted = errors.Wrap(errors.ErrUnprocessable, "drink could not be persisted")
)
