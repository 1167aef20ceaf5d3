package repository

import (
	"database/sql"
	"errors"

	drinkDomain "github.com/allisson/coffeeshop/internal/drink/domain"
	apperrors "github.com/allisson/coffeeshop/internal/errors"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDrink(row rowScanner) (*drinkDomain.Drink, error) {
	var (
		drink  drinkDomain.Drink
		recipe string
	)
	if err := row.Scan(&drink.ID, &drink.Title, &recipe); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, drinkDomain.ErrDrinkNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get drink")
	}

	decoded, err := drinkDomain.DecodeRecipe(recipe)
	if err != nil {
		return nil, err
	}
	drink.Recipe = decoded
	return &drink, nil
}

func scanDrinks(rows *sql.Rows) ([]*drinkDomain.Drink, error) {
	drinks := make([]*drinkDomain.Drink, 0)
	for rows.Next() {
		drink, err := scanDrink(rows)
		if err != nil {
			return nil, err
		}
		drinks = append(drinks, drink)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate drinks")
	}
	return drinks, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return drinkDomain.ErrDrinkNotFound
	}
	return nil
}
