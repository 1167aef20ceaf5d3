package dto

import (
	drinkDomain "github.com/allisson/coffeeshop/internal/drink/domain"
)

// ShortDrinksResponse lists drinks in their public form.
type ShortDrinksResponse struct {
	Success bool                     `json:"success"`
	Drinks  []drinkDomain.ShortDrink `json:"drinks"`
}

// LongDrinksResponse lists drinks with full recipes.
type LongDrinksResponse struct {
	Success bool                    `json:"success"`
	Drinks  []drinkDomain.LongDrink `json:"drinks"`
}

// DeleteDrinkResponse reports the id of a removed drink.
type DeleteDrinkResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

// MapDrinksToShortResponse converts domain drinks to the public list response.
func MapDrinksToShortResponse(drinks []*drinkDomain.Drink) ShortDrinksResponse {
	items := make([]drinkDomain.ShortDrink, 0, len(drinks))
	for _, drink := range drinks {
		items = append(items, drink.Short())
	}
	return ShortDrinksResponse{Success: true, Drinks: items}
}

// MapDrinksToLongResponse converts domain drinks to the detailed list response.
func MapDrinksToLongResponse(drinks ...*drinkDomain.Drink) LongDrinksResponse {
	items := make([]drinkDomain.LongDrink, 0, len(drinks))
	for _, drink := range drinks {
		items = append(items, drink.Long())
	}
	return LongDrinksResponse{Success: true, Drinks: items}
}
