package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"stockstores-be/internal/apperr"
	"stockstores-be/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByResetToken(ctx context.Context, token string) (*User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockRepository) SetPicture(ctx context.Context, id, url string) (*User, error) {
	args := m.Called(ctx, id, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) ReplaceAll(ctx context.Context, users []User) error {
	return m.Called(ctx, users).Error(0)
}

type fakeMailer struct {
	to, link string
	err      error
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, to, link string) error {
	f.to, f.link = to, link
	return f.err
}

// --- Helpers ---

func newTestService() (*service, *MockRepository, *fakeMailer, *auth.Issuer) {
	repo := new(MockRepository)
	mailer := &fakeMailer{}
	issuer := auth.NewIssuer("testsecret", time.Hour, 10*time.Minute)
	svc := NewService(repo, issuer, mailer, "http://localhost:3000/").(*service)
	svc.hashCost = bcrypt.MinCost
	return svc, repo, mailer, issuer
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := HashPassword(pw, bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

// --- Tests ---

func TestService_Signup(t *testing.T) {
	ctx := context.Background()
	input := SignupInput{FirstName: "Jane", LastName: "Smith", Email: "jane@mail.com", Password: "secret"}

	t.Run("Success", func(t *testing.T) {
		svc, repo, _, issuer := newTestService()
		repo.On("GetByEmail", ctx, "jane@mail.com").Return(nil, ErrUserNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
			return u.Email == "jane@mail.com" && CheckPasswordHash("secret", u.Password)
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*User).ID = "u1"
		}).Return(nil)

		res, err := svc.Signup(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "u1", res.ID)

		claims, err := issuer.Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.Identity.ID)
		assert.Equal(t, "Jane", claims.FirstName)
	})

	t.Run("Missing fields", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		_, err := svc.Signup(ctx, SignupInput{Email: "x@mail.com"})
		assert.ErrorIs(t, err, apperr.Validation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Email exists", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByEmail", ctx, "jane@mail.com").Return(&User{ID: "u0"}, nil)

		_, err := svc.Signup(ctx, input)
		assert.ErrorIs(t, err, apperr.Conflict)
	})

	t.Run("Race on unique index", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByEmail", ctx, "jane@mail.com").Return(nil, ErrUserNotFound)
		repo.On("Create", ctx, mock.Anything).Return(ErrEmailExists)

		_, err := svc.Signup(ctx, input)
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByEmail", ctx, "john@mail.com").Return(&User{ID: "u1", Email: "john@mail.com", Password: hashed(t, "pw")}, nil)

		res, err := svc.Login(ctx, LoginInput{Email: " john@mail.com ", Password: "pw"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("Wrong password", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByEmail", ctx, "john@mail.com").Return(&User{ID: "u1", Password: hashed(t, "pw")}, nil)

		_, err := svc.Login(ctx, LoginInput{Email: "john@mail.com", Password: "nope"})
		assert.ErrorIs(t, err, apperr.Unauthorized)
	})

	t.Run("Unknown email", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByEmail", ctx, "ghost@mail.com").Return(nil, ErrUserNotFound)

		_, err := svc.Login(ctx, LoginInput{Email: "ghost@mail.com", Password: "pw"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_ForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends reset link", func(t *testing.T) {
		svc, repo, mailer, issuer := newTestService()
		repo.On("GetByEmail", ctx, "john@mail.com").Return(&User{ID: "u1", Email: "john@mail.com"}, nil)
		repo.On("Save", ctx, mock.MatchedBy(func(u *User) bool { return u.ResetToken != nil })).Return(nil)

		require.NoError(t, svc.ForgotPassword(ctx, "john@mail.com"))
		assert.Equal(t, "john@mail.com", mailer.to)
		require.True(t, strings.HasPrefix(mailer.link, "http://localhost:3000/reset-password/"))

		token := strings.TrimPrefix(mailer.link, "http://localhost:3000/reset-password/")
		_, err := issuer.ParseReset(token)
		assert.NoError(t, err)
	})

	t.Run("Unknown email", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByEmail", ctx, "ghost@mail.com").Return(nil, ErrUserNotFound)

		assert.ErrorIs(t, svc.ForgotPassword(ctx, "ghost@mail.com"), apperr.NotFound)
	})

	t.Run("Mail failure", func(t *testing.T) {
		svc, repo, mailer, _ := newTestService()
		mailer.err = errors.New("smtp down")
		repo.On("GetByEmail", ctx, "john@mail.com").Return(&User{ID: "u1", Email: "john@mail.com"}, nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		assert.ErrorIs(t, svc.ForgotPassword(ctx, "john@mail.com"), apperr.Upstream)
	})
}

func TestService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Success clears token", func(t *testing.T) {
		svc, repo, _, issuer := newTestService()
		token, err := issuer.GenerateReset(auth.Identity{ID: "u1"})
		require.NoError(t, err)

		repo.On("GetByResetToken", ctx, token).Return(&User{ID: "u1", ResetToken: &token}, nil)
		repo.On("Save", ctx, mock.MatchedBy(func(u *User) bool {
			return u.ResetToken == nil && CheckPasswordHash("fresh", u.Password)
		})).Return(nil)

		require.NoError(t, svc.ResetPassword(ctx, ResetPasswordInput{Token: token, Password: "fresh"}))
		repo.AssertExpectations(t)
	})

	t.Run("Access token is not a reset token", func(t *testing.T) {
		svc, _, _, issuer := newTestService()
		token, err := issuer.Generate(auth.Identity{ID: "u1"})
		require.NoError(t, err)

		err = svc.ResetPassword(ctx, ResetPasswordInput{Token: token, Password: "fresh"})
		assert.ErrorIs(t, err, ErrResetExpired)
	})

	t.Run("Token no longer stored", func(t *testing.T) {
		svc, repo, _, issuer := newTestService()
		token, err := issuer.GenerateReset(auth.Identity{ID: "u1"})
		require.NoError(t, err)
		repo.On("GetByResetToken", ctx, token).Return(nil, ErrUserNotFound)

		err = svc.ResetPassword(ctx, ResetPasswordInput{Token: token, Password: "fresh"})
		assert.ErrorIs(t, err, apperr.NotFound)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	current := func(t *testing.T) *User {
		return &User{ID: "u1", FirstName: "John", LastName: "Doe", Email: "john@mail.com", Password: hashed(t, "pw")}
	}

	t.Run("Normalizes names and returns token", func(t *testing.T) {
		svc, repo, _, issuer := newTestService()
		repo.On("GetByID", ctx, "u1").Return(current(t), nil)
		repo.On("Save", ctx, mock.MatchedBy(func(u *User) bool {
			return u.FirstName == "Johnny" && u.LastName == "Doe"
		})).Return(nil)

		res, err := svc.Update(ctx, "u1", UpdateUserInput{CurrentPassword: "pw", FirstName: "  jOHNNY "})
		require.NoError(t, err)
		assert.Equal(t, "Johnny", res.FirstName)

		claims, err := issuer.Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, "Johnny", claims.FirstName)
	})

	t.Run("Wrong current password", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByID", ctx, "u1").Return(current(t), nil)

		_, err := svc.Update(ctx, "u1", UpdateUserInput{CurrentPassword: "bad"})
		assert.ErrorIs(t, err, ErrWrongPassword)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Email taken", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByID", ctx, "u1").Return(current(t), nil)
		repo.On("GetByEmail", ctx, "jane@mail.com").Return(&User{ID: "u2"}, nil)

		_, err := svc.Update(ctx, "u1", UpdateUserInput{CurrentPassword: "pw", Email: "jane@mail.com"})
		assert.ErrorIs(t, err, apperr.Conflict)
	})

	t.Run("New password is hashed", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByID", ctx, "u1").Return(current(t), nil)
		repo.On("Save", ctx, mock.MatchedBy(func(u *User) bool {
			return CheckPasswordHash("next", u.Password)
		})).Return(nil)

		_, err := svc.Update(ctx, "u1", UpdateUserInput{CurrentPassword: "pw", Password: "next"})
		require.NoError(t, err)
	})

	t.Run("Missing user", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByID", ctx, "u9").Return(nil, ErrUserNotFound)

		_, err := svc.Update(ctx, "u9", UpdateUserInput{CurrentPassword: "pw"})
		assert.ErrorIs(t, err, apperr.NotFound)
	})
}

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("pw", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("pw", h))
	assert.False(t, CheckPasswordHash("other", h))
}
