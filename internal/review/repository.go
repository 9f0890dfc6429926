package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"stockstores-be/internal/db"
	"stockstores-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	// FindByProductAndUser returns nil, nil when the user has not reviewed the product.
	FindByProductAndUser(ctx context.Context, productID, userID string) (*Review, error)
	ListByProduct(ctx context.Context, productID string) ([]Review, error)
	Ratings(ctx context.Context, productID string) ([]int, error)
	Update(ctx context.Context, id string, u ReviewUpdate) (*Review, error)
	Delete(ctx context.Context, id string) error
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
	UpdateUserInfo(ctx context.Context, userID string, info UserInfo) (int64, error)
}

const reviewColumns = `
	id, product_id, user_id, user_first_name, user_last_name,
	user_picture_url, rating, comment, created_at, updated_at`

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*Review, error) {
	var (
		r       Review
		comment sql.NullString
	)
	err := row.Scan(
		&r.ID, &r.ProductID, &r.UserID, &r.UserFirstName, &r.UserLastName,
		&r.UserPictureURL, &r.Rating, &comment, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if comment.Valid {
		r.Comment = &comment.String
	}
	return &r, nil
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Review"),
		zap.String("method", "Create"),
		zap.String("product_id", rv.ProductID),
	)

	rv.ID = db.NewID()
	now := time.Now().UTC()
	rv.CreatedAt, rv.UpdatedAt = now, now

	const q = `
		INSERT INTO reviews (
			id, product_id, user_id, user_first_name, user_last_name,
			user_picture_url, rating, comment, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, q,
		rv.ID, rv.ProductID, rv.UserID, rv.UserFirstName, rv.UserLastName,
		rv.UserPictureURL, rv.Rating, rv.Comment, rv.CreatedAt, rv.UpdatedAt,
	)
	if db.IsUniqueViolation(err) {
		return ErrDuplicateReview
	}
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Review, error) {
	if !db.ValidID(id) {
		return nil, ErrReviewNotFound
	}

	q := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	rv, err := scanReview(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	return rv, err
}

func (r *repository) FindByProductAndUser(ctx context.Context, productID, userID string) (*Review, error) {
	q := `SELECT ` + reviewColumns + ` FROM reviews WHERE product_id = $1 AND user_id = $2 LIMIT 1`
	rv, err := scanReview(r.db.QueryRowContext(ctx, q, productID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rv, err
}

func (r *repository) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	q := `SELECT ` + reviewColumns + ` FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, productID)
	if err != nil {
		logger.FromCtx(ctx).Error("list reviews failed", zap.String("product_id", productID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}

func (r *repository) Ratings(ctx context.Context, productID string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT rating FROM reviews WHERE product_id = $1`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		ratings = append(ratings, v)
	}
	return ratings, rows.Err()
}

func (r *repository) Update(ctx context.Context, id string, u ReviewUpdate) (*Review, error) {
	if !db.ValidID(id) {
		return nil, ErrReviewNotFound
	}

	sets := []string{}
	args := []any{}
	argIndex := 1

	if u.Rating != nil {
		sets = append(sets, fmt.Sprintf("rating = $%d", argIndex))
		args = append(args, *u.Rating)
		argIndex++
	}
	if u.UnsetComment {
		sets = append(sets, "comment = NULL")
	} else if u.Comment != nil {
		sets = append(sets, fmt.Sprintf("comment = $%d", argIndex))
		args = append(args, *u.Comment)
		argIndex++
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf(`UPDATE reviews SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argIndex, reviewColumns)
	args = append(args, id)

	rv, err := scanReview(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("update review failed", zap.String("review_id", id), zap.Error(err))
		return nil, err
	}
	return rv, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if !db.ValidID(id) {
		return ErrReviewNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *repository) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE product_id = $1`, productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) UpdateUserInfo(ctx context.Context, userID string, info UserInfo) (int64, error) {
	sets := []string{}
	args := []any{}
	argIndex := 1

	add := func(column string, v *string) {
		if v == nil {
			return
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, *v)
		argIndex++
	}
	add("user_first_name", info.UserFirstName)
	add("user_last_name", info.UserLastName)
	add("user_picture_url", info.UserPictureURL)
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf(`UPDATE reviews SET %s WHERE user_id = $%d`, strings.Join(sets, ", "), argIndex)
	args = append(args, userID)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("sync review user info failed", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}
