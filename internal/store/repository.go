package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"stockstores-be/internal/db"
	"stockstores-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, s *Store) error
	List(ctx context.Context) ([]Store, error)
	GetByID(ctx context.Context, id string) (*Store, error)
	GetBySlug(ctx context.Context, slug string) (*Store, error)
	ListBySeller(ctx context.Context, sellerID string) ([]Store, error)
	Update(ctx context.Context, id string, u StoreUpdate) (*Store, error)
	Delete(ctx context.Context, id string) error
	UpdateSellerInfo(ctx context.Context, sellerID string, info SellerInfo) (int64, error)
}

const storeColumns = `
	id, seller_id, seller_first_name, seller_last_name, seller_picture_url,
	store_slug, store_name, store_description, store_phone_number,
	store_address, store_image_url, created_at, updated_at`

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStore(row rowScanner) (*Store, error) {
	var (
		s       Store
		address []byte
	)
	err := row.Scan(
		&s.ID, &s.SellerID, &s.SellerFirstName, &s.SellerLastName, &s.SellerPictureURL,
		&s.StoreSlug, &s.StoreName, &s.StoreDescription, &s.StorePhoneNumber,
		&address, &s.StoreImageURL, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(address) > 0 {
		if err := json.Unmarshal(address, &s.StoreAddress); err != nil {
			return nil, fmt.Errorf("decode store_address: %w", err)
		}
	}
	return &s, nil
}

func (r *repository) Create(ctx context.Context, s *Store) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Store"),
		zap.String("method", "Create"),
	)

	address, err := json.Marshal(s.StoreAddress)
	if err != nil {
		return err
	}

	if s.ID == "" {
		s.ID = db.NewID()
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now

	const q = `
		INSERT INTO stores (
			id, seller_id, seller_first_name, seller_last_name, seller_picture_url,
			store_slug, store_name, store_description, store_phone_number,
			store_address, store_image_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.db.ExecContext(ctx, q,
		s.ID, s.SellerID, s.SellerFirstName, s.SellerLastName, s.SellerPictureURL,
		s.StoreSlug, s.StoreName, s.StoreDescription, s.StorePhoneNumber,
		address, s.StoreImageURL, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrSlugAlreadyExists
		}
		log.Error("insert failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]Store, error) {
	return r.list(ctx, "List", `SELECT `+storeColumns+` FROM stores ORDER BY created_at`)
}

func (r *repository) ListBySeller(ctx context.Context, sellerID string) ([]Store, error) {
	return r.list(ctx, "ListBySeller", `SELECT `+storeColumns+` FROM stores WHERE seller_id = $1 ORDER BY created_at`, sellerID)
}

func (r *repository) list(ctx context.Context, method, q string, args ...any) ([]Store, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Store"),
		zap.String("method", method),
	)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	stores := []Store{}
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		stores = append(stores, *s)
	}
	return stores, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Store, error) {
	if !db.ValidID(id) {
		return nil, ErrStoreNotFound
	}
	return r.getOne(ctx, "id", id)
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Store, error) {
	return r.getOne(ctx, "store_slug", slug)
}

func (r *repository) getOne(ctx context.Context, column, value string) (*Store, error) {
	q := fmt.Sprintf(`SELECT %s FROM stores WHERE %s = $1 LIMIT 1`, storeColumns, column)

	s, err := scanStore(r.db.QueryRowContext(ctx, q, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("get store failed", zap.String(column, value), zap.Error(err))
		return nil, err
	}
	return s, nil
}

func (r *repository) Update(ctx context.Context, id string, u StoreUpdate) (*Store, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Store"),
		zap.String("method", "Update"),
		zap.String("store_id", id),
	)

	if !db.ValidID(id) {
		return nil, ErrStoreNotFound
	}

	sets := []string{}
	args := []any{}
	argIndex := 1

	add := func(column string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, v)
		argIndex++
	}

	if u.StoreName != nil {
		add("store_name", *u.StoreName)
	}
	if u.StoreDescription != nil {
		add("store_description", *u.StoreDescription)
	}
	if u.StorePhoneNumber != nil {
		add("store_phone_number", *u.StorePhoneNumber)
	}
	if u.StoreAddress != nil {
		address, err := json.Marshal(u.StoreAddress)
		if err != nil {
			return nil, err
		}
		add("store_address", address)
	}
	if u.StoreImageURL != nil {
		add("store_image_url", *u.StoreImageURL)
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf(
		`UPDATE stores SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argIndex, storeColumns,
	)
	args = append(args, id)

	s, err := scanStore(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return nil, err
	}
	return s, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if !db.ValidID(id) {
		return ErrStoreNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("delete store failed", zap.String("store_id", id), zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStoreNotFound
	}
	return nil
}

func (r *repository) UpdateSellerInfo(ctx context.Context, sellerID string, info SellerInfo) (int64, error) {
	sets := []string{}
	args := []any{}
	argIndex := 1

	add := func(column, v string) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, v)
		argIndex++
	}

	if info.SellerFirstName != nil {
		add("seller_first_name", *info.SellerFirstName)
	}
	if info.SellerLastName != nil {
		add("seller_last_name", *info.SellerLastName)
	}
	if info.SellerPictureURL != nil {
		add("seller_picture_url", *info.SellerPictureURL)
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf(`UPDATE stores SET %s WHERE seller_id = $%d`, strings.Join(sets, ", "), argIndex)
	args = append(args, sellerID)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("seller snapshot update failed", zap.String("seller_id", sellerID), zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}
