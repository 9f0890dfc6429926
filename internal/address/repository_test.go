package address

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var addressRowColumns = []string{
	"id", "user_id", "full_name", "address", "city", "department",
	"contact_phone_number", "created_at", "updated_at",
}

func addressRow(id string) []driver.Value {
	now := time.Now()
	return []driver.Value{id, "u1", "Jane Smith", "Av. Sol 123", "Cusco", "Cusco", "987654321", now, now}
}

func TestRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(addressRowColumns).
			AddRow(addressRow(uuid.NewString())...).
			AddRow(addressRow(uuid.NewString())...)

		mock.ExpectQuery(`SELECT .* FROM shipping_addresses WHERE user_id = \$1`).
			WithArgs("u1").
			WillReturnRows(rows)

		res, err := repo.ListByUser(context.Background(), "u1")
		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, "Jane Smith", res[0].FullName)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM shipping_addresses`).
			WithArgs("u2").
			WillReturnRows(sqlmock.NewRows(addressRowColumns))

		res, err := repo.ListByUser(context.Background(), "u2")
		assert.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM shipping_addresses`).
			WithArgs("u1").
			WillReturnError(errors.New("db error"))

		res, err := repo.ListByUser(context.Background(), "u1")
		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.NewString()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM shipping_addresses WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(addressRowColumns).AddRow(addressRow(id)...))

		res, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, res.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM shipping_addresses WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		res, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrAddressNotFound)
		assert.Nil(t, res)
	})

	t.Run("Malformed id", func(t *testing.T) {
		_, err := repo.GetByID(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrAddressNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO shipping_addresses").
			WillReturnResult(sqlmock.NewResult(1, 1))

		a := &Address{UserID: "u1", FullName: "Jane"}
		require.NoError(t, repo.Create(context.Background(), a))
		assert.True(t, len(a.ID) == 36)
		assert.False(t, a.CreatedAt.IsZero())
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO shipping_addresses").
			WillReturnError(errors.New("insert failed"))

		assert.Error(t, repo.Create(context.Background(), &Address{}))
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.NewString()
	city := "Lima"

	t.Run("Success", func(t *testing.T) {
		row := addressRow(id)
		row[4] = city
		mock.ExpectQuery(`UPDATE shipping_addresses SET city = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs(city, id).
			WillReturnRows(sqlmock.NewRows(addressRowColumns).AddRow(row...))

		res, err := repo.Update(context.Background(), id, AddressUpdate{City: &city})
		require.NoError(t, err)
		assert.Equal(t, "Lima", res.City)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE shipping_addresses`).
			WithArgs(city, id).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(context.Background(), id, AddressUpdate{City: &city})
		assert.ErrorIs(t, err, ErrAddressNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.NewString()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM shipping_addresses WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), id))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM shipping_addresses WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrAddressNotFound)
	})
}
