// Package dto provides data transfer objects for drink HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	drinkDomain "github.com/allisson/coffeeshop/internal/drink/domain"
)

// CreateDrinkRequest contains the parameters for creating a drink.
// The recipe may be submitted as a single ingredient object or as a list.
type CreateDrinkRequest struct {
	Title  *string             `json:"title"`
	Recipe *drinkDomain.Recipe `json:"recipe"`
}

// Validate checks that both fields are present. Field contents are checked by the domain.
func (r *CreateDrinkRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.NotNil),
		validation.Field(&r.Recipe, validation.NotNil),
	)
}

// ToInput converts the request into use case input. Call Validate first.
func (r *CreateDrinkRequest) ToInput() drinkDomain.CreateDrinkInput {
	return drinkDomain.CreateDrinkInput{
		Title:  *r.Title,
		Recipe: *r.Recipe,
	}
}

// UpdateDrinkRequest contains a partial drink update. Absent fields are left unchanged.
type UpdateDrinkRequest struct {
	Title  *string             `json:"title"`
	Recipe *drinkDomain.Recipe `json:"recipe"`
}

// ToInput converts the request into use case input.
func (r *UpdateDrinkRequest) ToInput() drinkDomain.UpdateDrinkInput {
	return drinkDomain.UpdateDrinkInput{
		Title:  r.Title,
		Recipe: r.Recipe,
	}
}
