// Package repository implements drink persistence for PostgreSQL and MySQL.
// The recipe is stored as a JSON list in a text column.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/allisson/coffeeshop/internal/database"
	drinkDomain "github.com/allisson/coffeeshop/internal/drink/domain"
	apperrors "github.com/allisson/coffeeshop/internal/errors"
)

// postgresUniqueViolation is the SQLSTATE for unique constraint violations.
const postgresUniqueViolation = "23505"

// PostgreSQLDrinkRepository implements Drink persistence for PostgreSQL databases.
type PostgreSQLDrinkRepository struct {
	db *sql.DB
}

// NewPostgreSQLDrinkRepository creates a new PostgreSQL Drink repository instance.
func NewPostgreSQLDrinkRepository(db *sql.DB) *PostgreSQLDrinkRepository {
	return &PostgreSQLDrinkRepository{db: db}
}

// List returns every drink ordered by id.
func (p *PostgreSQLDrinkRepository) List(ctx context.Context) ([]*drinkDomain.Drink, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, title, recipe FROM drinks ORDER BY id`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list drinks")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanDrinks(rows)
}

// Get retrieves a drink by id.
func (p *PostgreSQLDrinkRepository) Get(ctx context.Context, id int64) (*drinkDomain.Drink, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, title, recipe FROM drinks WHERE id = $1`

	return scanDrink(querier.QueryRowContext(ctx, query, id))
}

// Create inserts a drink and sets its generated id.
func (p *PostgreSQLDrinkRepository) Create(ctx context.Context, drink *drinkDomain.Drink) error {
	querier := database.GetTx(ctx, p.db)

	recipe, err := drinkDomain.EncodeRecipe(drink.Recipe)
	if err != nil {
		return err
	}

	query := `INSERT INTO drinks (title, recipe) VALUES ($1, $2) RETURNING id`

	if err := querier.QueryRowContext(ctx, query, drink.Title, recipe).Scan(&drink.ID); err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return drinkDomain.ErrDrinkTitleTaken
		}
		return apperrors.Wrap(err, "failed to create drink")
	}
	return nil
}

// Update overwrites the title and recipe of an existing drink.
func (p *PostgreSQLDrinkRepository) Update(ctx context.Context, drink *drinkDomain.Drink) error {
	querier := database.GetTx(ctx, p.db)

	recipe, err := drinkDomain.EncodeRecipe(drink.Recipe)
	if err != nil {
		return err
	}

	query := `UPDATE drinks SET title = $1, recipe = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, drink.Title, recipe, drink.ID)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return drinkDomain.ErrDrinkTitleTaken
		}
		return apperrors.Wrap(err, "failed to update drink")
	}
	return requireAffected(result)
}

// Delete removes a drink by id.
func (p *PostgreSQLDrinkRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM drinks WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete drink")
	}
	return requireAffected(result)
}

// DeleteAll removes every drink and returns how many rows were deleted.
func (p *PostgreSQLDrinkRepository) DeleteAll(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM drinks`)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete drinks")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return affected, nil
}

func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == postgresUniqueViolation
}
