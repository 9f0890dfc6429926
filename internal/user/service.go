package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stockstores-be/internal/auth"
	"stockstores-be/internal/logger"
	"stockstores-be/internal/utils"

	"go.uber.org/zap"
)

// Tokens issues and checks the tokens handed to users.
type Tokens interface {
	Generate(id auth.Identity) (string, error)
	GenerateReset(id auth.Identity) (string, error)
	ParseReset(token string) (*auth.CustomClaims, error)
}

type Mailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
}

type Service interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResponse, error)
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
	Update(ctx context.Context, id string, input UpdateUserInput) (*AuthResponse, error)
	Get(ctx context.Context, id string) (*User, error)
	SetPicture(ctx context.Context, id, url string) (*User, error)
}

type service struct {
	repo     Repository
	tokens   Tokens
	mailer   Mailer
	baseURL  string
	hashCost int
}

// NewService builds the account service. baseURL is the frontend origin the
// reset link points at.
func NewService(repo Repository, tokens Tokens, mailer Mailer, baseURL string) Service {
	return &service{
		repo:     repo,
		tokens:   tokens,
		mailer:   mailer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		hashCost: DefaultHashCost,
	}
}

func (s *service) authResponse(u *User) (*AuthResponse, error) {
	token, err := s.tokens.Generate(u.Identity())
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		IsSeller:   u.IsSeller,
		PictureURL: u.PictureURL,
		Token:      token,
	}, nil
}

func (s *service) Signup(ctx context.Context, input SignupInput) (*AuthResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Signup"),
	)

	email := strings.TrimSpace(input.Email)
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" ||
		email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(input.Password, s.hashCost)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     email,
		Password:  hashed,
		IsSeller:  input.IsSeller,
	}

	// A concurrent signup with the same email still hits the unique index.
	if err := s.repo.Create(ctx, u); err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.Error(err))
		}
		return nil, err
	}

	log.Info("user signed up", zap.String("user_id", u.ID))
	return s.authResponse(u)
}

func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPasswordHash(input.Password, u.Password) {
		logger.FromCtx(ctx).Info("password mismatch", zap.String("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}
	return s.authResponse(u)
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ForgotPassword"),
	)

	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrEmailNotFound
		}
		return err
	}

	token, err := s.tokens.GenerateReset(u.Identity())
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	u.ResetToken = &token
	if err := s.repo.Save(ctx, u); err != nil {
		log.Error("failed to store reset token", zap.Error(err))
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.baseURL, token)
	if err := s.mailer.SendPasswordReset(ctx, u.Email, link); err != nil {
		log.Error("failed to send reset email", zap.String("user_id", u.ID), zap.Error(err))
		return ErrMailFailed
	}

	log.Info("reset email sent", zap.String("user_id", u.ID))
	return nil
}

func (s *service) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if _, err := s.tokens.ParseReset(input.Token); err != nil {
		return ErrResetExpired
	}
	if input.Password == "" {
		return ErrPasswordRequired
	}

	u, err := s.repo.GetByResetToken(ctx, input.Token)
	if err != nil {
		return err
	}

	hashed, err := HashPassword(input.Password, s.hashCost)
	if err != nil {
		return err
	}

	u.Password = hashed
	u.ResetToken = nil
	if err := s.repo.Save(ctx, u); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("password reset", zap.String("user_id", u.ID))
	return nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateUserInput) (*AuthResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateUser"),
		zap.String("user_id", id),
	)

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CheckPasswordHash(input.CurrentPassword, u.Password) {
		return nil, ErrWrongPassword
	}

	if first := strings.TrimSpace(input.FirstName); first != "" {
		u.FirstName = utils.NormalizeName(first)
	}
	if last := strings.TrimSpace(input.LastName); last != "" {
		u.LastName = utils.NormalizeName(last)
	}
	if email := strings.TrimSpace(input.Email); email != "" && email != u.Email {
		other, err := s.repo.GetByEmail(ctx, email)
		switch {
		case err == nil && other.ID != u.ID:
			return nil, ErrEmailTaken
		case err != nil && !errors.Is(err, ErrUserNotFound):
			return nil, err
		}
		u.Email = email
	}
	if strings.TrimSpace(input.Password) != "" {
		hashed, err := HashPassword(input.Password, s.hashCost)
		if err != nil {
			return nil, err
		}
		u.Password = hashed
	}

	if err := s.repo.Save(ctx, u); err != nil {
		log.Error("failed to save user", zap.Error(err))
		return nil, err
	}

	log.Info("user updated")
	return s.authResponse(u)
}

func (s *service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) SetPicture(ctx context.Context, id, url string) (*User, error) {
	return s.repo.SetPicture(ctx, id, url)
}
