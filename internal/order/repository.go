package order

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
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListByStore(ctx context.Context, storeID string) ([]Order, error)
	Update(ctx context.Context, id string, u OrderUpdate) (*Order, error)

	// UpdateStoreInfo rewrites the store snapshot on every order of storeID.
	UpdateStoreInfo(ctx context.Context, storeID string, info StoreInfo) (int64, error)
}

const orderColumns = `
	id, user_id, store_id, store_slug, store_name, store_image_url,
	order_status, order_items, shipping_address, items_price, shipping_price,
	total_price, payment_method, paid_at, delivered_at, created_at, updated_at`

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o        Order
		items    []byte
		shipping []byte
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.StoreID, &o.StoreSlug, &o.StoreName, &o.StoreImageURL,
		&o.OrderStatus, &items, &shipping, &o.ItemsPrice, &o.ShippingPrice,
		&o.TotalPrice, &o.PaymentMethod, &o.PaidAt, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.OrderItems); err != nil {
		return nil, fmt.Errorf("decode order_items: %w", err)
	}
	if err := json.Unmarshal(shipping, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping_address: %w", err)
	}
	if o.OrderItems == nil {
		o.OrderItems = []OrderItem{}
	}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "Create"),
	)

	items, err := json.Marshal(o.OrderItems)
	if err != nil {
		return err
	}
	shipping, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return err
	}

	if o.ID == "" {
		o.ID = db.NewID()
	}
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now

	const q = `
		INSERT INTO orders (
			id, user_id, store_id, store_slug, store_name, store_image_url,
			order_status, order_items, shipping_address, items_price, shipping_price,
			total_price, payment_method, paid_at, delivered_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err = r.db.ExecContext(ctx, q,
		o.ID, o.UserID, o.StoreID, o.StoreSlug, o.StoreName, o.StoreImageURL,
		string(o.OrderStatus), items, shipping, o.ItemsPrice, o.ShippingPrice,
		o.TotalPrice, o.PaymentMethod, o.PaidAt, o.DeliveredAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	if !db.ValidID(id) {
		return nil, ErrOrderNotFound
	}

	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("get order failed", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx, "ListByUser", "user_id", userID)
}

func (r *repository) ListByStore(ctx context.Context, storeID string) ([]Order, error) {
	return r.list(ctx, "ListByStore", "store_id", storeID)
}

func (r *repository) list(ctx context.Context, method, column, value string) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", method),
	)

	q := fmt.Sprintf(`SELECT %s FROM orders WHERE %s = $1 ORDER BY created_at DESC`, orderColumns, column)

	rows, err := r.db.QueryContext(ctx, q, value)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *repository) Update(ctx context.Context, id string, u OrderUpdate) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "Update"),
		zap.String("order_id", id),
	)

	if !db.ValidID(id) {
		return nil, ErrOrderNotFound
	}

	sets := []string{}
	args := []any{}
	argIndex := 1

	add := func(column string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, v)
		argIndex++
	}

	if u.OrderStatus != nil {
		add("order_status", string(*u.OrderStatus))
	}
	if u.PaymentMethod != nil {
		add("payment_method", *u.PaymentMethod)
	}
	if u.ShippingAddress != nil {
		shipping, err := json.Marshal(u.ShippingAddress)
		if err != nil {
			return nil, err
		}
		add("shipping_address", shipping)
	}
	if u.PaidAt != nil {
		add("paid_at", *u.PaidAt)
	}
	if u.DeliveredAt != nil {
		add("delivered_at", *u.DeliveredAt)
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf(
		`UPDATE orders SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argIndex, orderColumns,
	)
	args = append(args, id)

	o, err := scanOrder(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return nil, err
	}
	return o, nil
}

func (r *repository) UpdateStoreInfo(ctx context.Context, storeID string, info StoreInfo) (int64, error) {
	sets := []string{}
	args := []any{}
	argIndex := 1

	add := func(column string, v string) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, v)
		argIndex++
	}

	if info.StoreName != nil {
		add("store_name", *info.StoreName)
	}
	if info.StoreSlug != nil {
		add("store_slug", *info.StoreSlug)
	}
	if info.StoreImageURL != nil {
		add("store_image_url", *info.StoreImageURL)
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf(`UPDATE orders SET %s WHERE store_id = $%d`, strings.Join(sets, ", "), argIndex)
	args = append(args, storeID)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("store snapshot update failed", zap.String("store_id", storeID), zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}
