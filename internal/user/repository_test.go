package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{
	"id", "first_name", "last_name", "email", "password", "reset_token",
	"picture_url", "is_seller", "created_at", "updated_at",
}

func userRow(id string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userRowColumns).AddRow(
		id, "John", "Doe", "john@mail.com", "hashed", nil,
		nil, true, now, now,
	)
}

func TestRepository_Create(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	repo := NewRepository(conn)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))

		u := &User{FirstName: "John", Email: "john@mail.com", Password: "hashed"}
		require.NoError(t, repo.Create(ctx, u))
		_, parseErr := uuid.Parse(u.ID)
		assert.NoError(t, parseErr)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, &User{Email: "john@mail.com"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("db error"))
		assert.Error(t, repo.Create(ctx, &User{}))
	})
}

func TestRepository_GetByEmail(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	repo := NewRepository(conn)
	ctx := context.Background()
	id := uuid.NewString()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs("john@mail.com").
			WillReturnRows(userRow(id))

		u, err := repo.GetByEmail(ctx, "john@mail.com")
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		assert.Nil(t, u.ResetToken)
		assert.Equal(t, "", u.PictureURL)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs("ghost@mail.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByEmail(ctx, "ghost@mail.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Malformed id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "662e9ff190de30ba068ec9dd")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_Save(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	repo := NewRepository(conn)
	ctx := context.Background()
	u := &User{ID: uuid.NewString(), FirstName: "John", LastName: "Doe", Email: "john@mail.com", Password: "h"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users`).
			WithArgs("John", "Doe", "john@mail.com", "h", nil, "", u.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Save(ctx, u))
	})

	t.Run("Email taken", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users`).WillReturnError(&pq.Error{Code: "23505"})
		assert.ErrorIs(t, repo.Save(ctx, u), ErrEmailTaken)
	})

	t.Run("Gone", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.Save(ctx, u), ErrUserNotFound)
	})
}

func TestRepository_SetPicture(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	repo := NewRepository(conn)
	id := uuid.NewString()

	mock.ExpectQuery(`UPDATE users SET picture_url = \$1`).
		WithArgs("https://img/1.png", id).
		WillReturnRows(userRow(id))

	u, err := repo.SetPicture(context.Background(), id, "https://img/1.png")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
}

func TestRepository_ReplaceAll(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	repo := NewRepository(conn)
	users := []User{{FirstName: "A", Email: "a@mail.com"}, {FirstName: "B", Email: "b@mail.com"}}

	t.Run("Commits", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.ReplaceAll(context.Background(), users))
		assert.NotEmpty(t, users[0].ID)
		assert.NotEmpty(t, users[1].ID)
	})

	t.Run("Rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		fresh := []User{{FirstName: "A"}}
		assert.Error(t, repo.ReplaceAll(context.Background(), fresh))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
