package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"stockstores-be/internal/db"
	"stockstores-be/internal/logger"
	"stockstores-be/internal/rating"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	ListByStore(ctx context.Context, storeID string, featuredOnly bool) ([]Product, error)
	Update(ctx context.Context, id string, u ProductUpdate) (*Product, error)
	Delete(ctx context.Context, id string) error
	DeleteByStore(ctx context.Context, storeID string) (int64, error)

	// AdjustStock adds delta to stockAmount only when the result stays >= 0.
	AdjustStock(ctx context.Context, id string, delta int) error
	SetRatingSummary(ctx context.Context, id string, s rating.Summary) (*Product, error)
}

const productColumns = `
	id, store_id, product_slug, product_name, product_description,
	product_price, product_brand, product_category, stock_amount,
	reviews_amount, average_rating, lead_image_url, images_collection_url,
	is_featured, created_at, updated_at`

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.StoreID, &p.ProductSlug, &p.ProductName, &p.ProductDescription,
		&p.ProductPrice, &p.ProductBrand, &p.ProductCategory, &p.StockAmount,
		&p.ReviewsAmount, &p.AverageRating, &p.LeadImageURL, pq.Array(&p.ImagesCollectionURL),
		&p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "Create"),
	)

	if p.ID == "" {
		p.ID = db.NewID()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	const q = `
		INSERT INTO products (
			id, store_id, product_slug, product_name, product_description,
			product_price, product_brand, product_category, stock_amount,
			reviews_amount, average_rating, lead_image_url, images_collection_url,
			is_featured, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(ctx, q,
		p.ID, p.StoreID, p.ProductSlug, p.ProductName, p.ProductDescription,
		p.ProductPrice, p.ProductBrand, p.ProductCategory, p.StockAmount,
		p.ReviewsAmount, p.AverageRating, p.LeadImageURL, pq.Array(p.ImagesCollectionURL),
		p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	if !db.ValidID(id) {
		return nil, ErrProductNotFound
	}
	return r.getOne(ctx, "GetByID", "id", id)
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	return r.getOne(ctx, "GetBySlug", "product_slug", slug)
}

func (r *repository) getOne(ctx context.Context, method, column, value string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", method),
	)

	q := fmt.Sprintf(`SELECT %s FROM products WHERE %s = $1 LIMIT 1`, productColumns, column)

	p, err := scanProduct(r.db.QueryRowContext(ctx, q, value))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *repository) ListByStore(ctx context.Context, storeID string, featuredOnly bool) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "ListByStore"),
		zap.String("store_id", storeID),
	)

	q := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1`
	if featuredOnly {
		q += ` AND is_featured = true`
	}
	q += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, q, storeID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *repository) Update(ctx context.Context, id string, u ProductUpdate) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "Update"),
		zap.String("product_id", id),
	)

	if !db.ValidID(id) {
		return nil, ErrProductNotFound
	}

	sets := []string{}
	args := []any{}
	argIndex := 1

	add := func(column string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, v)
		argIndex++
	}

	if u.ProductName != nil {
		add("product_name", *u.ProductName)
	}
	if u.ProductDescription != nil {
		add("product_description", *u.ProductDescription)
	}
	if u.ProductPrice != nil {
		add("product_price", *u.ProductPrice)
	}
	if u.ProductBrand != nil {
		add("product_brand", *u.ProductBrand)
	}
	if u.ProductCategory != nil {
		add("product_category", *u.ProductCategory)
	}
	if u.StockAmount != nil {
		add("stock_amount", *u.StockAmount)
	}
	if u.LeadImageURL != nil {
		add("lead_image_url", *u.LeadImageURL)
	}
	if u.ImagesCollectionURL != nil {
		add("images_collection_url", pq.Array(*u.ImagesCollectionURL))
	}
	if u.IsFeatured != nil {
		add("is_featured", *u.IsFeatured)
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf(
		`UPDATE products SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argIndex, productColumns,
	)
	args = append(args, id)

	p, err := scanProduct(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if !db.ValidID(id) {
		return ErrProductNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("delete product failed", zap.String("product_id", id), zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) DeleteByStore(ctx context.Context, storeID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE store_id = $1`, storeID)
	if err != nil {
		logger.FromCtx(ctx).Error("delete store products failed", zap.String("store_id", storeID), zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) AdjustStock(ctx context.Context, id string, delta int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "AdjustStock"),
		zap.String("product_id", id),
		zap.Int("delta", delta),
	)

	if !db.ValidID(id) {
		return missingProduct(id)
	}

	const q = `
		UPDATE products
		SET stock_amount = stock_amount + $1,
		    updated_at = NOW()
		WHERE id = $2
		  AND stock_amount + $1 >= 0
	`

	res, err := r.db.ExecContext(ctx, q, delta, id)
	if err != nil {
		log.Error("stock update failed", zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// Nothing matched: either the product is gone or the guard refused.
	var name string
	err = r.db.QueryRowContext(ctx, `SELECT product_name FROM products WHERE id = $1`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return missingProduct(id)
	}
	if err != nil {
		log.Error("stock lookup failed", zap.Error(err))
		return err
	}
	return insufficientStock(name)
}

func (r *repository) SetRatingSummary(ctx context.Context, id string, s rating.Summary) (*Product, error) {
	if !db.ValidID(id) {
		return nil, ErrProductNotFound
	}

	q := `
		UPDATE products
		SET reviews_amount = $1,
		    average_rating = $2,
		    updated_at = NOW()
		WHERE id = $3
		RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, q, s.ReviewsAmount, s.AverageRating, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("rating summary update failed", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}
