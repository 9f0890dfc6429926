package address

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
	ListByUser(ctx context.Context, userID string) ([]Address, error)
	GetByID(ctx context.Context, id string) (*Address, error)
	Create(ctx context.Context, a *Address) error
	Update(ctx context.Context, id string, u AddressUpdate) (*Address, error)
	Delete(ctx context.Context, id string) error
}

const addressColumns = `
	id, user_id, full_name, address, city, department,
	contact_phone_number, created_at, updated_at`

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAddress(row rowScanner) (*Address, error) {
	var a Address
	err := row.Scan(
		&a.ID, &a.UserID, &a.FullName, &a.Address, &a.City, &a.Department,
		&a.ContactPhoneNumber, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "ListByUser"),
		zap.String("user_id", userID),
	)

	q := `SELECT ` + addressColumns + ` FROM shipping_addresses WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := []Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Address, error) {
	if !db.ValidID(id) {
		return nil, ErrAddressNotFound
	}

	q := `SELECT ` + addressColumns + ` FROM shipping_addresses WHERE id = $1`

	a, err := scanAddress(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("get address failed", zap.String("address_id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (r *repository) Create(ctx context.Context, a *Address) error {
	if a.ID == "" {
		a.ID = db.NewID()
	}
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now

	const q = `
		INSERT INTO shipping_addresses (
			id, user_id, full_name, address, city, department,
			contact_phone_number, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.UserID, a.FullName, a.Address, a.City, a.Department,
		a.ContactPhoneNumber, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("insert address failed",
			zap.String("repo", "Address"),
			zap.String("user_id", a.UserID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, id string, u AddressUpdate) (*Address, error) {
	if !db.ValidID(id) {
		return nil, ErrAddressNotFound
	}

	sets := []string{}
	args := []any{}
	argIndex := 1

	add := func(column, v string) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, v)
		argIndex++
	}

	if u.FullName != nil {
		add("full_name", *u.FullName)
	}
	if u.Address != nil {
		add("address", *u.Address)
	}
	if u.City != nil {
		add("city", *u.City)
	}
	if u.Department != nil {
		add("department", *u.Department)
	}
	if u.ContactPhoneNumber != nil {
		add("contact_phone_number", *u.ContactPhoneNumber)
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf(
		`UPDATE shipping_addresses SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argIndex, addressColumns,
	)
	args = append(args, id)

	a, err := scanAddress(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("update address failed", zap.String("address_id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if !db.ValidID(id) {
		return ErrAddressNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM shipping_addresses WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("delete address failed", zap.String("address_id", id), zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAddressNotFound
	}
	return nil
}
