package store

import (
	"context"
	"strings"

	"stockstores-be/internal/logger"
	"stockstores-be/internal/utils"

	"go.uber.org/zap"
)

// ProductRemover deletes every product of a store.
type ProductRemover interface {
	DeleteByStore(ctx context.Context, storeID string) (int64, error)
}

type Service interface {
	List(ctx context.Context) ([]Store, error)
	GetByID(ctx context.Context, id string) (*Store, error)
	GetBySlug(ctx context.Context, slug string) (*Store, error)
	ListBySeller(ctx context.Context, sellerID string) ([]Store, error)
	Create(ctx context.Context, input CreateStoreInput) (*Store, error)
	Update(ctx context.Context, id string, u StoreUpdate) (*Store, error)
	Delete(ctx context.Context, id string) error
	SyncSellerInfo(ctx context.Context, sellerID string, info SellerInfo) (int64, error)

	ResolveID(ctx context.Context, id string) (slug, name string, err error)
	ResolveSlug(ctx context.Context, slug string) (id, name string, err error)
}

type service struct {
	repo     Repository
	products ProductRemover
}

func NewService(repo Repository, products ProductRemover) Service {
	return &service{repo: repo, products: products}
}

func (s *service) List(ctx context.Context) ([]Store, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id string) (*Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Store, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) ListBySeller(ctx context.Context, sellerID string) ([]Store, error) {
	stores, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, ErrNoSellerStores
	}
	return stores, nil
}

func (s *service) Create(ctx context.Context, input CreateStoreInput) (*Store, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateStore"),
		zap.String("seller_id", input.SellerID),
	)

	name := strings.TrimSpace(input.StoreName)
	switch {
	case strings.TrimSpace(input.SellerID) == "":
		return nil, ErrSellerRequired
	case name == "":
		return nil, ErrNameRequired
	}

	st := &Store{
		SellerID:         input.SellerID,
		SellerFirstName:  input.SellerFirstName,
		SellerLastName:   input.SellerLastName,
		SellerPictureURL: input.SellerPictureURL,
		StoreSlug:        utils.GenerateSlug(name),
		StoreName:        name,
		StoreDescription: input.StoreDescription,
		StorePhoneNumber: input.StorePhoneNumber,
		StoreAddress:     input.StoreAddress,
		StoreImageURL:    input.StoreImageURL,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		log.Error("failed to create store", zap.Error(err))
		return nil, err
	}

	log.Info("store created", zap.String("store_id", st.ID), zap.String("slug", st.StoreSlug))
	return st, nil
}

func (s *service) Update(ctx context.Context, id string, u StoreUpdate) (*Store, error) {
	if u.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	if u.StoreName != nil {
		name := strings.TrimSpace(*u.StoreName)
		if name == "" {
			return nil, ErrNameRequired
		}
		u.StoreName = &name
	}
	return s.repo.Update(ctx, id, u)
}

// Delete removes the store and then its products. Reviews of those products
// are left in place.
func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteStore"),
		zap.String("store_id", id),
	)

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	n, err := s.products.DeleteByStore(ctx, id)
	if err != nil {
		log.Error("store deleted but its products were not", zap.Error(err))
		return err
	}

	log.Info("store deleted", zap.Int64("products_deleted", n))
	return nil
}

func (s *service) SyncSellerInfo(ctx context.Context, sellerID string, info SellerInfo) (int64, error) {
	if strings.TrimSpace(sellerID) == "" {
		return 0, ErrSellerRequired
	}
	if info.IsEmpty() {
		return 0, ErrNothingToSync
	}
	return s.repo.UpdateSellerInfo(ctx, sellerID, info)
}

func (s *service) ResolveID(ctx context.Context, id string) (string, string, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	return st.StoreSlug, st.StoreName, nil
}

func (s *service) ResolveSlug(ctx context.Context, slug string) (string, string, error) {
	st, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return "", "", err
	}
	return st.ID, st.StoreName, nil
}
