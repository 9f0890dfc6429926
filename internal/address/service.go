package address

import (
	"context"
	"strings"

	"stockstores-be/internal/logger"

	"go.uber.org/zap"
)

// Service manages the shipping addresses a user keeps on file. Update and
// Delete act on behalf of userID; an address owned by someone else is
// reported as not found.
type Service interface {
	ListByUser(ctx context.Context, userID string) ([]Address, error)
	Create(ctx context.Context, input CreateAddressInput) (*Address, error)
	Update(ctx context.Context, userID, id string, u AddressUpdate) (*Address, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListByUser(
	ctx context.Context,
	userID string,
) ([]Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Create(
	ctx context.Context,
	input CreateAddressInput,
) (*Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Create"),
		zap.String("user_id", input.UserID),
	)

	a := &Address{
		UserID:             strings.TrimSpace(input.UserID),
		FullName:           strings.TrimSpace(input.FullName),
		Address:            strings.TrimSpace(input.Address),
		City:               strings.TrimSpace(input.City),
		Department:         strings.TrimSpace(input.Department),
		ContactPhoneNumber: strings.TrimSpace(input.ContactPhoneNumber),
	}
	for _, v := range []string{a.UserID, a.FullName, a.Address, a.City, a.Department, a.ContactPhoneNumber} {
		if v == "" {
			return nil, ErrMissingFields
		}
	}

	if err := s.repo.Create(ctx, a); err != nil {
		log.Error("failed to create address", zap.Error(err))
		return nil, err
	}

	log.Info("address created", zap.String("address_id", a.ID))
	return a, nil
}

func (s *service) Update(
	ctx context.Context,
	userID, id string,
	u AddressUpdate,
) (*Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Update"),
		zap.String("address_id", id),
	)

	if u.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	for _, p := range []*string{u.FullName, u.Address, u.City, u.Department, u.ContactPhoneNumber} {
		if p == nil {
			continue
		}
		*p = strings.TrimSpace(*p)
		if *p == "" {
			return nil, ErrBlankField
		}
	}

	if err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}

	a, err := s.repo.Update(ctx, id, u)
	if err != nil {
		log.Error("failed to update address", zap.Error(err))
		return nil, err
	}

	log.Info("address updated")
	return a, nil
}

func (s *service) Delete(
	ctx context.Context,
	userID, id string,
) error {

	if err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("address deleted", zap.String("address_id", id))
	return nil
}

func (s *service) owned(ctx context.Context, userID, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.UserID != userID {
		logger.FromCtx(ctx).Warn("unauthorized address access",
			zap.String("address_id", id),
			zap.String("user_id", userID),
		)
		return ErrAddressNotFound
	}
	return nil
}
