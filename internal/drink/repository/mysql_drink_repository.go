package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/allisson/coffeeshop/internal/database"
	drinkDomain "github.com/allisson/coffeeshop/internal/drink/domain"
	apperrors "github.com/allisson/coffeeshop/internal/errors"
)

// mysqlDuplicateEntry is the MySQL error number for duplicate key violations.
const mysqlDuplicateEntry = 1062

// MySQLDrinkRepository implements Drink persistence for MySQL databases.
type MySQLDrinkRepository struct {
	db *sql.DB
}

// NewMySQLDrinkRepository creates a new MySQL Drink repository instance.
func NewMySQLDrinkRepository(db *sql.DB) *MySQLDrinkRepository {
	return &MySQLDrinkRepository{db: db}
}

// List returns every drink ordered by id.
func (m *MySQLDrinkRepository) List(ctx context.Context) ([]*drinkDomain.Drink, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(ctx, `SELECT id, title, recipe FROM drinks ORDER BY id`)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list drinks")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanDrinks(rows)
}

// Get retrieves a drink by id.
func (m *MySQLDrinkRepository) Get(ctx context.Context, id int64) (*drinkDomain.Drink, error) {
	querier := database.GetTx(ctx, m.db)

	return scanDrink(querier.QueryRowContext(ctx, `SELECT id, title, recipe FROM drinks WHERE id = ?`, id))
}

// Create inserts a drink and sets its generated id.
func (m *MySQLDrinkRepository) Create(ctx context.Context, drink *drinkDomain.Drink) error {
	querier := database.GetTx(ctx, m.db)

	recipe, err := drinkDomain.EncodeRecipe(drink.Recipe)
	if err != nil {
		return err
	}

	result, err := querier.ExecContext(ctx, `INSERT INTO drinks (title, recipe) VALUES (?, ?)`, drink.Title, recipe)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return drinkDomain.ErrDrinkTitleTaken
		}
		return apperrors.Wrap(err, "failed to create drink")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get drink id")
	}
	drink.ID = id
	return nil
}

// Update overwrites the title and recipe of an existing drink. MySQL reports
// zero affected rows for unchanged values, so existence is checked by the caller.
func (m *MySQLDrinkRepository) Update(ctx context.Context, drink *drinkDomain.Drink) error {
	querier := database.GetTx(ctx, m.db)

	recipe, err := drinkDomain.EncodeRecipe(drink.Recipe)
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(
		ctx,
		`UPDATE drinks SET title = ?, recipe = ? WHERE id = ?`,
		drink.Title,
		recipe,
		drink.ID,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return drinkDomain.ErrDrinkTitleTaken
		}
		return apperrors.Wrap(err, "failed to update drink")
	}
	return nil
}

// Delete removes a drink by id.
func (m *MySQLDrinkRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM drinks WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete drink")
	}
	return requireAffected(result)
}

// DeleteAll removes every drink and returns how many rows were deleted.
func (m *MySQLDrinkRepository) DeleteAll(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, m.db)

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

func isMySQLDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
