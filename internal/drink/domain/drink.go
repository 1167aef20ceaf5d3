// Package domain defines the drink menu entities and their JSON representations.
// A drink's recipe is always held as a list of ingredients, even when it was
// submitted as a single ingredient object.
package domain

import (
	"bytes"
	"encoding/json"

	"github.com/allisson/coffeeshop/internal/errors"
)

// MaxTitleLength is the maximum number of characters allowed in a drink title.
const MaxTitleLength = 80

// Ingredient is a single component of a drink recipe.
type Ingredient struct {
	// Name is the ingredient name, e.g. "espresso".
	Name string `json:"name"`
	// Color is the display color used to render the ingredient, e.g. "brown".
	Color string `json:"color"`
	// Parts is the relative amount of the ingredient in the drink.
	Parts int `json:"parts"`
}

// Recipe is the ordered list of ingredients that make up a drink.
type Recipe []Ingredient

// UnmarshalJSON accepts either a single ingredient object or a list of them.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var ingredient Ingredient
		if err := json.Unmarshal(trimmed, &ingredient); err != nil {
			return err
		}
		*r = Recipe{ingredient}
		return nil
	}

	var ingredients []Ingredient
	if err := json.Unmarshal(trimmed, &ingredients); err != nil {
		return err
	}
	*r = Recipe(ingredients)
	return nil
}

// Drink is a menu item.
type Drink struct {
	ID     int64
	Title  string
	Recipe Recipe
}

// ShortIngredient is the public view of an ingredient; it never exposes parts.
type ShortIngredient struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ShortDrink is the public representation of a drink.
type ShortDrink struct {
	ID     int64             `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

// LongDrink is the detailed representation of a drink including ingredient parts.
type LongDrink struct {
	ID     int64        `json:"id"`
	Title  string       `json:"title"`
	Recipe []Ingredient `json:"recipe"`
}

// Short returns the public view of the drink.
func (d *Drink) Short() ShortDrink {
	recipe := make([]ShortIngredient, 0, len(d.Recipe))
	for _, ingredient := range d.Recipe {
		recipe = append(recipe, ShortIngredient{Name: ingredient.Name, Color: ingredient.Color})
	}
	return ShortDrink{ID: d.ID, Title: d.Title, Recipe: recipe}
}

// Long returns the detailed view of the drink.
func (d *Drink) Long() LongDrink {
	recipe := make([]Ingredient, 0, len(d.Recipe))
	recipe = append(recipe, d.Recipe...)
	return LongDrink{ID: d.ID, Title: d.Title, Recipe: recipe}
}

// EncodeRecipe serializes a recipe into the JSON list stored in the recipe column.
func EncodeRecipe(recipe Recipe) (string, error) {
	if recipe == nil {
		recipe = Recipe{}
	}
	data, err := json.Marshal([]Ingredient(recipe))
	if err != nil {
		return "", errors.Wrap(err, "failed to encode recipe")
	}
	return string(data), nil
}

// DecodeRecipe parses the stored recipe column. A stored single object is
// normalized into a one-element list.
func DecodeRecipe(raw string) (Recipe, error) {
	var recipe Recipe
	if err := json.Unmarshal([]byte(raw), &recipe); err != nil {
		return nil, errors.Wrap(err, "failed to decode recipe")
	}
	if recipe == nil {
		recipe = Recipe{}
	}
	return recipe, nil
}
