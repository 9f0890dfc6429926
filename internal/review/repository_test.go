package review

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewRowColumns = []string{
	"id", "product_id", "user_id", "user_first_name", "user_last_name",
	"user_picture_url", "rating", "comment", "created_at", "updated_at",
}

func TestRepository_Create(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	repo := NewRepository(conn)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO reviews").WillReturnResult(sqlmock.NewResult(0, 1))

		rv := &Review{ProductID: "p1", UserID: "u1", Rating: 4}
		require.NoError(t, repo.Create(context.Background(), rv))
		assert.NotEmpty(t, rv.ID)
	})

	t.Run("Unique violation", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO reviews").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "reviews_product_user_key"})

		err := repo.Create(context.Background(), &Review{ProductID: "p1", UserID: "u1", Rating: 4})
		assert.ErrorIs(t, err, ErrDuplicateReview)
	})
}

func TestRepository_FindByProductAndUser(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	repo := NewRepository(conn)

	t.Run("None", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM reviews WHERE product_id = \\$1 AND user_id = \\$2").
			WithArgs("p1", "u1").
			WillReturnError(sql.ErrNoRows)

		rv, err := repo.FindByProductAndUser(context.Background(), "p1", "u1")
		assert.NoError(t, err)
		assert.Nil(t, rv)
	})

	t.Run("Found without comment", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT .* FROM reviews WHERE product_id = \\$1 AND user_id = \\$2").
			WithArgs("p1", "u1").
			WillReturnRows(sqlmock.NewRows(reviewRowColumns).
				AddRow(uuid.NewString(), "p1", "u1", "Ana", "Diaz", "", 5, nil, now, now))

		rv, err := repo.FindByProductAndUser(context.Background(), "p1", "u1")
		require.NoError(t, err)
		assert.Equal(t, 5, rv.Rating)
		assert.Nil(t, rv.Comment)
	})
}

func TestRepository_Ratings(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT rating FROM reviews WHERE product_id = \\$1").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(5).AddRow(3))

	ratings, err := NewRepository(conn).Ratings(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3}, ratings)
}

func TestRepository_Update(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	repo := NewRepository(conn)
	id := uuid.NewString()
	now := time.Now()
	rating := 2

	mock.ExpectQuery("UPDATE reviews SET rating = \\$1, comment = NULL, updated_at = NOW\\(\\) WHERE id = \\$2").
		WithArgs(rating, id).
		WillReturnRows(sqlmock.NewRows(reviewRowColumns).
			AddRow(id, "p1", "u1", "Ana", "Diaz", "", 2, nil, now, now))

	rv, err := repo.Update(context.Background(), id, ReviewUpdate{Rating: &rating, UnsetComment: true})
	require.NoError(t, err)
	assert.Equal(t, 2, rv.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateUserInfo(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	first, pic := "Ana", "https://img/ana.png"
	mock.ExpectExec("UPDATE reviews SET user_first_name = \\$1, user_picture_url = \\$2, updated_at = NOW\\(\\) WHERE user_id = \\$3").
		WithArgs(first, pic, "u1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := NewRepository(conn).UpdateUserInfo(context.Background(), "u1", UserInfo{UserFirstName: &first, UserPictureURL: &pic})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestRepository_Delete(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	repo := NewRepository(conn)

	assert.ErrorIs(t, repo.Delete(context.Background(), "not-a-uuid"), ErrReviewNotFound)

	id := uuid.NewString()
	mock.ExpectExec("DELETE FROM reviews WHERE id = \\$1").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), id))
}
