package product

import (
	"context"
	"strings"

	"stockstores-be/internal/logger"
	"stockstores-be/internal/utils"

	"go.uber.org/zap"
)

// StoreResolver looks up a store by slug without importing the store package.
type StoreResolver interface {
	ResolveSlug(ctx context.Context, slug string) (storeID, storeName string, err error)
}

// ReviewRemover deletes the reviews of a product.
type ReviewRemover interface {
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
}

type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	ListByStore(ctx context.Context, storeID string, featuredOnly bool) ([]Product, error)
	ListByStoreSlug(ctx context.Context, slug string, featuredOnly bool) (*StoreProducts, error)
	Update(ctx context.Context, id string, u ProductUpdate) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	stores  StoreResolver
	reviews ReviewRemover
}

func NewService(repo Repository, stores StoreResolver, reviews ReviewRemover) Service {
	return &service{repo: repo, stores: stores, reviews: reviews}
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	input.ProductName = strings.TrimSpace(input.ProductName)
	switch {
	case input.StoreID == "":
		return nil, ErrStoreRequired
	case input.ProductName == "":
		return nil, ErrNameRequired
	case input.ProductPrice < 0:
		return nil, ErrNegativePrice
	case input.StockAmount < 0:
		return nil, ErrNegativeStock
	}

	images := input.ImagesCollectionURL
	if images == nil {
		images = []string{}
	}

	p := &Product{
		StoreID:             input.StoreID,
		ProductSlug:         utils.GenerateSlug(input.ProductName),
		ProductName:         input.ProductName,
		ProductDescription:  input.ProductDescription,
		ProductPrice:        input.ProductPrice,
		ProductBrand:        input.ProductBrand,
		ProductCategory:     input.ProductCategory,
		StockAmount:         input.StockAmount,
		LeadImageURL:        input.LeadImageURL,
		ImagesCollectionURL: images,
		IsFeatured:          input.IsFeatured,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created",
		zap.String("product_id", p.ID),
		zap.String("store_id", p.StoreID),
		zap.String("slug", p.ProductSlug),
	)
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) ListByStore(ctx context.Context, storeID string, featuredOnly bool) ([]Product, error) {
	return s.repo.ListByStore(ctx, storeID, featuredOnly)
}

func (s *service) ListByStoreSlug(ctx context.Context, slug string, featuredOnly bool) (*StoreProducts, error) {
	storeID, storeName, err := s.stores.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.ListByStore(ctx, storeID, featuredOnly)
	if err != nil {
		return nil, err
	}

	return &StoreProducts{
		StoreName:            storeName,
		AllProductsFromStore: products,
	}, nil
}

func (s *service) Update(ctx context.Context, id string, u ProductUpdate) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.String("product_id", id),
	)

	if u.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	if u.ProductName != nil {
		name := strings.TrimSpace(*u.ProductName)
		if name == "" {
			return nil, ErrNameRequired
		}
		u.ProductName = &name
	}
	if u.ProductPrice != nil && *u.ProductPrice < 0 {
		return nil, ErrNegativePrice
	}
	if u.StockAmount != nil && *u.StockAmount < 0 {
		return nil, ErrNegativeStock
	}

	p, err := s.repo.Update(ctx, id, u)
	if err != nil {
		log.Warn("product update failed", zap.Error(err))
		return nil, err
	}

	log.Info("product updated")
	return p, nil
}

// Delete removes the product and every review written for it.
func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProduct"),
		zap.String("product_id", id),
	)

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	removed, err := s.reviews.DeleteByProduct(ctx, id)
	if err != nil {
		log.Error("failed to delete product reviews", zap.Error(err))
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}

	log.Info("product deleted", zap.Int64("reviews_removed", removed))
	return nil
}
