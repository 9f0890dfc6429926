package order

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"stockstores-be/internal/apperr"
	"stockstores-be/internal/events"
	"stockstores-be/internal/keylock"
	"stockstores-be/internal/logger"
	"stockstores-be/internal/stock"

	"go.uber.org/zap"
)

// StoreLookup resolves the store an order listing belongs to.
type StoreLookup interface {
	ResolveID(ctx context.Context, id string) (slug, name string, err error)
	ResolveSlug(ctx context.Context, slug string) (id, name string, err error)
}

type EventPublisher interface {
	Publish(ctx context.Context, e events.OrderEvent) error
}

type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListByStore(ctx context.Context, storeID string) (*StoreOrders, error)
	ListByStoreSlug(ctx context.Context, slug string) (*StoreOrders, error)
	Update(ctx context.Context, id string, u OrderUpdate) (*Order, error)
	SyncStoreInfo(ctx context.Context, storeID string, info StoreInfo) (int64, error)
}

type service struct {
	repo   Repository
	stock  stock.Adjuster
	stores StoreLookup
	events EventPublisher
	locks  *keylock.Map
	now    func() time.Time
}

func NewService(
	repo Repository,
	adjuster stock.Adjuster,
	stores StoreLookup,
	publisher EventPublisher,
) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &service{
		repo:   repo,
		stock:  adjuster,
		stores: stores,
		events: publisher,
		locks:  keylock.New(),
		now:    time.Now,
	}
}

func validateInput(input CreateOrderInput) error {
	switch {
	case strings.TrimSpace(input.UserID) == "":
		return ErrUserRequired
	case strings.TrimSpace(input.StoreID) == "":
		return ErrStoreRequired
	case len(input.OrderItems) == 0:
		return ErrItemsRequired
	case input.ItemsPrice < 0 || input.ShippingPrice < 0 || input.TotalPrice < 0:
		return ErrNegativePrice
	}

	for i, it := range input.OrderItems {
		switch {
		case strings.TrimSpace(it.ProductID) == "":
			return invalidItem(i, "productId is required")
		case it.Quantity <= 0:
			return invalidItem(i, "quantity must be positive")
		case it.ProductPrice < 0 || it.ItemPrice < 0:
			return invalidItem(i, "prices cannot be negative")
		}
	}
	return nil
}

const priceTolerance = 0.005

// CheckTotals reports whether the submitted prices add up: the item prices
// must sum to itemsPrice and itemsPrice plus shippingPrice must equal
// totalPrice.
func CheckTotals(input CreateOrderInput) error {
	var sum float64
	for _, it := range input.OrderItems {
		sum += it.ItemPrice
	}
	if math.Abs(sum-input.ItemsPrice) > priceTolerance {
		return ErrTotalsMismatch
	}
	if math.Abs(input.ItemsPrice+input.ShippingPrice-input.TotalPrice) > priceTolerance {
		return ErrTotalsMismatch
	}
	return nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("user_id", input.UserID),
		zap.String("store_id", input.StoreID),
	)

	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Totals come from the client and are stored as sent.
	if err := CheckTotals(input); err != nil {
		log.Warn("order totals do not add up",
			zap.Float64("items_price", input.ItemsPrice),
			zap.Float64("shipping_price", input.ShippingPrice),
			zap.Float64("total_price", input.TotalPrice),
		)
	}

	lines := itemLines(input.OrderItems)
	if err := stock.Reserve(ctx, s.stock, lines); err != nil {
		log.Info("stock reservation refused", zap.Error(err))
		return nil, err
	}

	o := &Order{
		UserID:          input.UserID,
		StoreID:         input.StoreID,
		StoreSlug:       input.StoreSlug,
		StoreName:       input.StoreName,
		StoreImageURL:   input.StoreImageURL,
		OrderStatus:     StatusAwaitingApproval,
		OrderItems:      append([]OrderItem(nil), input.OrderItems...),
		ShippingAddress: input.ShippingAddress,
		ItemsPrice:      input.ItemsPrice,
		ShippingPrice:   input.ShippingPrice,
		TotalPrice:      input.TotalPrice,
		PaymentMethod:   input.PaymentMethod,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to persist order, releasing stock", zap.Error(err))
		if errs := stock.Release(ctx, s.stock, lines); len(errs) > 0 {
			log.Error("stock release after failed insert was partial", zap.Error(errors.Join(errs...)))
		}
		return nil, err
	}

	s.publish(ctx, events.OrderCreated, o, "")

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Int("items", len(o.OrderItems)),
	)
	return o, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListByStore(ctx context.Context, storeID string) (*StoreOrders, error) {
	slug, name, err := s.stores.ResolveID(ctx, storeID)
	if err != nil {
		if errors.Is(err, apperr.NotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return s.storeOrders(ctx, storeID, slug, name)
}

func (s *service) ListByStoreSlug(ctx context.Context, slug string) (*StoreOrders, error) {
	storeID, name, err := s.stores.ResolveSlug(ctx, slug)
	if err != nil {
		if errors.Is(err, apperr.NotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return s.storeOrders(ctx, storeID, slug, name)
}

func (s *service) storeOrders(ctx context.Context, storeID, slug, name string) (*StoreOrders, error) {
	orders, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return &StoreOrders{StoreName: name, StoreSlug: slug, AllOrdersFromStore: orders}, nil
}

// Update applies u to the order. Moving an order into Cancelled or Rejected
// by Seller gives its items back to stock, unless it was already in one of
// those statuses. Moving it back out of them reserves the items again, so an
// order holds its stock at most once.
func (s *service) Update(ctx context.Context, id string, u OrderUpdate) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrder"),
		zap.String("order_id", id),
	)

	if u.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	if u.OrderStatus == nil {
		return s.repo.Update(ctx, id, u)
	}

	next := *u.OrderStatus
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	released := current.OrderStatus.ReleasesStock()
	reserved := false
	switch {
	case next.ReleasesStock() && !released:
		if errs := stock.Release(ctx, s.stock, current.Lines()); len(errs) > 0 {
			log.Warn("stock only partly restored", zap.Int("failures", len(errs)))
		}
	case !next.ReleasesStock() && released:
		// A reopened order takes its items out of stock again.
		if err := stock.Reserve(ctx, s.stock, current.Lines()); err != nil {
			log.Info("stock reservation refused on reopen", zap.Error(err))
			return nil, err
		}
		reserved = true
	}

	updated, err := s.repo.Update(ctx, id, u)
	if err != nil {
		log.Error("failed to update order", zap.Error(err))
		if reserved {
			if errs := stock.Release(ctx, s.stock, current.Lines()); len(errs) > 0 {
				log.Error("stock release after failed reopen was partial", zap.Error(errors.Join(errs...)))
			}
		}
		return nil, err
	}

	if current.OrderStatus != updated.OrderStatus {
		s.publish(ctx, events.OrderStatusChanged, updated, current.OrderStatus)
		log.Info("order status changed",
			zap.String("from", string(current.OrderStatus)),
			zap.String("to", string(updated.OrderStatus)),
		)
	}
	return updated, nil
}

func (s *service) SyncStoreInfo(ctx context.Context, storeID string, info StoreInfo) (int64, error) {
	if storeID == "" {
		return 0, ErrStoreRequired
	}
	if info.IsEmpty() {
		return 0, ErrNothingToSync
	}

	n, err := s.repo.UpdateStoreInfo(ctx, storeID, info)
	if err != nil {
		return 0, err
	}

	logger.FromCtx(ctx).Info("store snapshot synced",
		zap.String("store_id", storeID),
		zap.Int64("orders", n),
	)
	return n, nil
}

// publish never fails the caller; the order is already stored.
func (s *service) publish(ctx context.Context, typ events.OrderEventType, o *Order, previous Status) {
	e := events.OrderEvent{
		Type:           typ,
		OrderID:        o.ID,
		UserID:         o.UserID,
		StoreID:        o.StoreID,
		StoreName:      o.StoreName,
		Status:         string(o.OrderStatus),
		PreviousStatus: string(previous),
		TotalPrice:     o.TotalPrice,
		OccurredAt:     s.now().UTC(),
	}
	if err := s.events.Publish(ctx, e); err != nil {
		logger.FromCtx(ctx).Warn("failed to publish order event",
			zap.String("type", string(typ)),
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
	}
}
