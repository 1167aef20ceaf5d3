package domain

import (
	"strconv"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/coffeeshop/internal/validation"
)

// CreateDrinkInput holds the values for a new drink.
type CreateDrinkInput struct {
	Title  string
	Recipe Recipe
}

// UpdateDrinkInput holds a partial update. Nil fields are left unchanged.
type UpdateDrinkInput struct {
	Title  *string
	Recipe *Recipe
}

// Apply copies the present fields of the input onto the drink.
func (u UpdateDrinkInput) Apply(drink *Drink) {
	if u.Title != nil {
		drink.Title = *u.Title
	}
	if u.Recipe != nil {
		drink.Recipe = *u.Recipe
	}
}

// Validate checks the ingredient fields.
func (i Ingredient) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, customValidation.NotBlank),
		validation.Field(&i.Color, validation.Required, customValidation.NotBlank),
		validation.Field(&i.Parts, validation.Required, validation.Min(1)),
	)
}

// Validate checks every ingredient, reporting errors by position.
func (r Recipe) Validate() error {
	errs := validation.Errors{}
	for idx, ingredient := range r {
		if err := ingredient.Validate(); err != nil {
			errs[strconv.Itoa(idx)] = err
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks the drink invariants: a non-blank title of at most
// MaxTitleLength characters and a non-empty recipe of valid ingredients.
func (d *Drink) Validate() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&d.Recipe, validation.Required),
	)
}
