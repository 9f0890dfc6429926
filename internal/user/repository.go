package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stockstores-be/internal/db"
	"stockstores-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)

	// Save writes every mutable field of u back to the store.
	Save(ctx context.Context, u *User) error
	SetPicture(ctx context.Context, id, url string) (*User, error)

	// ReplaceAll drops every user and inserts users in one go.
	ReplaceAll(ctx context.Context, users []User) error
}

const userColumns = `
	id, first_name, last_name, email, password, reset_token,
	picture_url, is_seller, created_at, updated_at`

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var (
		u       User
		picture sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.ResetToken,
		&picture, &u.IsSeller, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.PictureURL = picture.String
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u *User) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "User"),
		zap.String("method", "Create"),
	)

	if u.ID == "" {
		u.ID = db.NewID()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	const q = `
		INSERT INTO users (
			id, first_name, last_name, email, password, reset_token,
			picture_url, is_seller, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, q,
		u.ID, u.FirstName, u.LastName, u.Email, u.Password, u.ResetToken,
		u.PictureURL, u.IsSeller, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrEmailExists
		}
		log.Error("insert failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	if !db.ValidID(id) {
		return nil, ErrUserNotFound
	}
	return r.getOne(ctx, "id", id)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *repository) GetByResetToken(ctx context.Context, token string) (*User, error) {
	return r.getOne(ctx, "reset_token", token)
}

func (r *repository) getOne(ctx context.Context, column, value string) (*User, error) {
	q := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1 LIMIT 1`, userColumns, column)

	u, err := scanUser(r.db.QueryRowContext(ctx, q, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("get user failed",
			zap.String("repo", "User"),
			zap.String("by", column),
			zap.Error(err),
		)
		return nil, err
	}
	return u, nil
}

func (r *repository) Save(ctx context.Context, u *User) error {
	if !db.ValidID(u.ID) {
		return ErrUserNotFound
	}

	const q = `
		UPDATE users
		SET first_name = $1,
		    last_name = $2,
		    email = $3,
		    password = $4,
		    reset_token = $5,
		    picture_url = $6,
		    updated_at = NOW()
		WHERE id = $7
	`

	res, err := r.db.ExecContext(ctx, q,
		u.FirstName, u.LastName, u.Email, u.Password, u.ResetToken, u.PictureURL, u.ID,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		logger.FromCtx(ctx).Error("save user failed", zap.String("user_id", u.ID), zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) SetPicture(ctx context.Context, id, url string) (*User, error) {
	if !db.ValidID(id) {
		return nil, ErrUserNotFound
	}

	q := `UPDATE users SET picture_url = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, q, url, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("set picture failed", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	return u, nil
}

// ReplaceAll needs a *sql.DB to run in a transaction; with any other DBTX it
// runs the statements directly.
func (r *repository) ReplaceAll(ctx context.Context, users []User) (err error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "User"),
		zap.String("method", "ReplaceAll"),
	)

	exec := r.db
	if conn, ok := r.db.(*sql.DB); ok {
		tx, txErr := conn.BeginTx(ctx, nil)
		if txErr != nil {
			return txErr
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback()
				return
			}
			err = tx.Commit()
		}()
		exec = tx
	}

	if _, err = exec.ExecContext(ctx, `DELETE FROM users`); err != nil {
		log.Error("clear users failed", zap.Error(err))
		return err
	}

	tx := &repository{db: exec}
	for i := range users {
		if err = tx.Create(ctx, &users[i]); err != nil {
			return err
		}
	}
	return nil
}
