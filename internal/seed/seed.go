// Package seed loads the fixture accounts used for demos and local runs.
package seed

import (
	"context"
	"fmt"

	"stockstores-be/internal/apperr"
	"stockstores-be/internal/logger"
	"stockstores-be/internal/user"

	"go.uber.org/zap"
)

var ErrDisabled = apperr.New(apperr.Forbidden, "Seeding is disabled in production.")

const defaultPicture = "https://www.pngkey.com/png/full/115-1150152_default-profile-picture-avatar-png-green.png"

type fixture struct {
	firstName, lastName, email, password string
	isSeller                             bool
	picture                              string
}

var fixtures = []fixture{
	{"John", "Doe", "john@mail.com", "password1", true, defaultPicture},
	{"David", "Etinbruh", "david@mail.com", "password2", true, defaultPicture},
	{"Jane", "Smith", "jane@mail.com", "password3", false, ""},
	{"Alice", "Johnson", "alice@mail.com", "password4", false, ""},
	{"James", "Carson", "james@mail.com", "password5", false, ""},
}

type UserReplacer interface {
	ReplaceAll(ctx context.Context, users []user.User) error
}

type Seeder struct {
	users    UserReplacer
	enabled  bool
	hashCost int
}

// New returns a Seeder; production deployments pass enabled=false.
func New(users UserReplacer, enabled bool) *Seeder {
	return &Seeder{users: users, enabled: enabled, hashCost: user.DefaultHashCost}
}

// Users drops every account and inserts the fixtures. The returned users
// carry their new ids.
func (s *Seeder) Users(ctx context.Context) ([]user.User, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}

	users := make([]user.User, 0, len(fixtures))
	for _, f := range fixtures {
		hashed, err := user.HashPassword(f.password, s.hashCost)
		if err != nil {
			return nil, fmt.Errorf("hash fixture password: %w", err)
		}
		users = append(users, user.User{
			FirstName:  f.firstName,
			LastName:   f.lastName,
			Email:      f.email,
			Password:   hashed,
			IsSeller:   f.isSeller,
			PictureURL: f.picture,
		})
	}

	if err := s.users.ReplaceAll(ctx, users); err != nil {
		logger.FromCtx(ctx).Error("seed users failed", zap.Error(err))
		return nil, err
	}

	logger.FromCtx(ctx).Info("base data created", zap.Int("users", len(users)))
	return users, nil
}
