package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	drinkDomain "github.com/allisson/coffeeshop/internal/drink/domain"
)

func TestMySQLDrinkRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLDrinkRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "recipe"}).
		AddRow(1, "Water", `[{"name":"water","color":"blue","parts":1}]`)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, recipe FROM drinks ORDER BY id`)).WillReturnRows(rows)

	drinks, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, "Water", drinks[0].Title)
}

func TestMySQLDrinkRepository_Get(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, title, recipe FROM drinks WHERE id = ?`)

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLDrinkRepository(db)

		mock.ExpectQuery(query).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "recipe"}).AddRow(2, "Tea", `[]`))

		drink, err := repo.Get(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, "Tea", drink.Title)
		assert.Equal(t, drinkDomain.Recipe{}, drink.Recipe)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLDrinkRepository(db)

		mock.ExpectQuery(query).WithArgs(int64(2)).WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), 2)
		assert.ErrorIs(t, err, drinkDomain.ErrDrinkNotFound)
	})
}

func TestMySQLDrinkRepository_Create(t *testing.T) {
	query := regexp.QuoteMeta(`INSERT INTO drinks (title, recipe) VALUES (?, ?)`)

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLDrinkRepository(db)

		mock.ExpectExec(query).
			WithArgs("Water", `[{"name":"water","color":"blue","parts":1}]`).
			WillReturnResult(sqlmock.NewResult(7, 1))

		drink := &drinkDomain.Drink{
			Title:  "Water",
			Recipe: drinkDomain.Recipe{{Name: "water", Color: "blue", Parts: 1}},
		}
		require.NoError(t, repo.Create(context.Background(), drink))
		assert.Equal(t, int64(7), drink.ID)
	})

	t.Run("Error_DuplicateTitle", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLDrinkRepository(db)

		mock.ExpectExec(query).WillReturnError(&mysql.MySQLError{Number: mysqlDuplicateEntry})

		err := repo.Create(context.Background(), &drinkDomain.Drink{Title: "Water"})
		assert.ErrorIs(t, err, drinkDomain.ErrDrinkTitleTaken)
	})

	t.Run("Error_LastInsertId", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLDrinkRepository(db)

		mock.ExpectExec(query).WillReturnResult(sqlmock.NewErrorResult(errors.New("unsupported")))

		err := repo.Create(context.Background(), &drinkDomain.Drink{Title: "Water"})
		assert.Error(t, err)
	})
}

func TestMySQLDrinkRepository_Update(t *testing.T) {
	query := regexp.QuoteMeta(`UPDATE drinks SET title = ?, recipe = ? WHERE id = ?`)
	drink := &drinkDomain.Drink{ID: 4, Title: "Tea", Recipe: drinkDomain.Recipe{}}

	t.Run("Success_Unchanged", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLDrinkRepository(db)

		mock.ExpectExec(query).WithArgs("Tea", `[]`, int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Update(context.Background(), drink))
	})

	t.Run("Error_DuplicateTitle", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLDrinkRepository(db)

		mock.ExpectExec(query).WillReturnError(&mysql.MySQLError{Number: mysqlDuplicateEntry})

		assert.ErrorIs(t, repo.Update(context.Background(), drink), drinkDomain.ErrDrinkTitleTaken)
	})
}

func TestMySQLDrinkRepository_Delete(t *testing.T) {
	query := regexp.QuoteMeta(`DELETE FROM drinks WHERE id = ?`)

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLDrinkRepository(db)

		mock.ExpectExec(query).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 4))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLDrinkRepository(db)

		mock.ExpectExec(query).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 4), drinkDomain.ErrDrinkNotFound)
	})
}

func TestMySQLDrinkRepository_DeleteAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLDrinkRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM drinks`)).WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
