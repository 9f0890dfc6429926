package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockstores-be/internal/address"
	"stockstores-be/internal/apperr"
	"stockstores-be/internal/auth"
	"stockstores-be/internal/middleware"
	"stockstores-be/internal/order"
	"stockstores-be/internal/product"
	"stockstores-be/internal/review"
	"stockstores-be/internal/seed"
	"stockstores-be/internal/upload"
	"stockstores-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---
// Each fake embeds the service interface; calling a method the test did not
// stub panics.

type fakeOrders struct {
	order.Service
	create func(ctx context.Context, in order.CreateOrderInput) (*order.Order, error)
}

func (f *fakeOrders) Create(ctx context.Context, in order.CreateOrderInput) (*order.Order, error) {
	return f.create(ctx, in)
}

type fakeProducts struct {
	product.Service
	calls []string
}

func (f *fakeProducts) ListByStore(_ context.Context, storeID string, featured bool) ([]product.Product, error) {
	if featured {
		f.calls = append(f.calls, "ListByStore:"+storeID+":featured")
	} else {
		f.calls = append(f.calls, "ListByStore:"+storeID)
	}
	return []product.Product{}, nil
}

func (f *fakeProducts) GetBySlug(_ context.Context, slug string) (*product.Product, error) {
	f.calls = append(f.calls, "GetBySlug:"+slug)
	if slug == "missing" {
		return nil, product.ErrProductNotFound
	}
	return &product.Product{ID: "p1", ProductSlug: slug}, nil
}

type fakeReviews struct {
	review.Service
	owner   string
	deleted bool
}

func (f *fakeReviews) Get(_ context.Context, id string) (*review.Review, error) {
	return &review.Review{ID: id, UserID: f.owner}, nil
}

func (f *fakeReviews) Delete(_ context.Context, id string) (*product.Product, error) {
	f.deleted = true
	return &product.Product{ID: "p1", ReviewsAmount: 0}, nil
}

type fakeUploads struct {
	got []byte
}

func (f *fakeUploads) UploadUserPicture(_ context.Context, userID, filename string, data []byte) (string, error) {
	if err := upload.CheckImage(data); err != nil {
		return "", err
	}
	f.got = data
	return "https://img.test/users/" + userID + "/" + filename, nil
}

type fakeShipping struct {
	address.Service
}

func (fakeShipping) ListByUser(_ context.Context, userID string) ([]address.Address, error) {
	return []address.Address{{ID: "a1", UserID: userID}}, nil
}

type fakeSeeder struct{ err error }

func (f fakeSeeder) Users(context.Context) ([]user.User, error) {
	return []user.User{{ID: "u1", Email: "john@mail.com"}}, f.err
}

// --- Helpers ---

const secret = "testsecret"

func newTestHandler(svc Services) http.Handler {
	gin.SetMode(gin.TestMode)
	issuer := auth.NewIssuer(secret, time.Hour, time.Minute)
	return middleware.Auth(issuer)(NewServer(Options{}, svc).Handler())
}

func tokenFor(t *testing.T, id string) string {
	t.Helper()
	tok, err := auth.NewIssuer(secret, time.Hour, time.Minute).Generate(auth.Identity{ID: id})
	require.NoError(t, err)
	return tok
}

func do(h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// --- Tests ---

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.New(apperr.NotFound, "x"), http.StatusNotFound},
		{apperr.New(apperr.InsufficientStock, "x"), http.StatusBadRequest},
		{apperr.New(apperr.DuplicateReview, "x"), http.StatusBadRequest},
		{apperr.New(apperr.Validation, "x"), http.StatusBadRequest},
		{apperr.New(apperr.Unauthorized, "x"), http.StatusUnauthorized},
		{apperr.New(apperr.Forbidden, "x"), http.StatusForbidden},
		{apperr.New(apperr.Conflict, "x"), http.StatusConflict},
		{apperr.New(apperr.Upstream, "x"), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestCreateOrder(t *testing.T) {
	input := order.CreateOrderInput{
		UserID:     "u1",
		StoreID:    "s1",
		OrderItems: []order.OrderItem{{ProductID: "p1", Quantity: 2}},
	}

	t.Run("No token", func(t *testing.T) {
		h := newTestHandler(Services{Orders: &fakeOrders{}})
		w := do(h, http.MethodPost, "/orders/create", input, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Bad token", func(t *testing.T) {
		h := newTestHandler(Services{Orders: &fakeOrders{}})
		w := do(h, http.MethodPost, "/orders/create", input, "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Someone else's order", func(t *testing.T) {
		h := newTestHandler(Services{Orders: &fakeOrders{}})
		w := do(h, http.MethodPost, "/orders/create", input, tokenFor(t, "u2"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Created", func(t *testing.T) {
		orders := &fakeOrders{create: func(_ context.Context, in order.CreateOrderInput) (*order.Order, error) {
			return &order.Order{ID: "o1", UserID: in.UserID, OrderStatus: order.StatusAwaitingApproval}, nil
		}}
		h := newTestHandler(Services{Orders: orders})

		w := do(h, http.MethodPost, "/orders/create", input, tokenFor(t, "u1"))
		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, "o1", body["_id"])
		assert.Equal(t, string(order.StatusAwaitingApproval), body["orderStatus"])
	})

	t.Run("Insufficient stock lists every product", func(t *testing.T) {
		orders := &fakeOrders{create: func(context.Context, order.CreateOrderInput) (*order.Order, error) {
			return nil, errors.Join(
				apperr.New(apperr.InsufficientStock, "insufficient stock for product 'A'"),
				apperr.New(apperr.InsufficientStock, "insufficient stock for product 'B'"),
			)
		}}
		h := newTestHandler(Services{Orders: orders})

		w := do(h, http.MethodPost, "/orders/create", input, tokenFor(t, "u1"))
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Len(t, body["details"], 2)
		assert.Contains(t, body["message"], "product 'A'")
	})

	t.Run("Malformed body", func(t *testing.T) {
		h := newTestHandler(Services{Orders: &fakeOrders{}})
		req := httptest.NewRequest(http.MethodPost, "/orders/create", bytes.NewBufferString("{"))
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, "u1"))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductRoutes(t *testing.T) {
	products := &fakeProducts{}
	h := newTestHandler(Services{Products: products})

	w := do(h, http.MethodGet, "/products/s1/all?featured=true", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(h, http.MethodGet, "/products/red-mug-abc", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(h, http.MethodGet, "/products/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, product.ErrProductNotFound.Error(), decode(t, w)["message"])

	assert.Equal(t, []string{
		"ListByStore:s1:featured",
		"GetBySlug:red-mug-abc",
		"GetBySlug:missing",
	}, products.calls)
}

func TestDeleteReview(t *testing.T) {
	t.Run("Owner", func(t *testing.T) {
		reviews := &fakeReviews{owner: "u1"}
		h := newTestHandler(Services{Reviews: reviews})

		w := do(h, http.MethodDelete, "/reviews/delete/r1", nil, tokenFor(t, "u1"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, reviews.deleted)
		assert.Equal(t, "p1", decode(t, w)["_id"])
	})

	t.Run("Not owner", func(t *testing.T) {
		reviews := &fakeReviews{owner: "u2"}
		h := newTestHandler(Services{Reviews: reviews})

		w := do(h, http.MethodDelete, "/reviews/delete/r1", nil, tokenFor(t, "u1"))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, reviews.deleted)
	})
}

func TestShippingRequiresSelf(t *testing.T) {
	h := newTestHandler(Services{Shipping: fakeShipping{}})

	w := do(h, http.MethodGet, "/shipping/u1", nil, tokenFor(t, "u1"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(h, http.MethodGet, "/shipping/u1", nil, tokenFor(t, "u2"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(h, http.MethodGet, "/shipping/u1", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func multipartBody(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadUserPicture(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

	send := func(h http.Handler, token string, filename string, data []byte) *httptest.ResponseRecorder {
		body, ct := multipartBody(t, filename, data)
		req := httptest.NewRequest(http.MethodPost, "/upload/user/u1", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	t.Run("Success", func(t *testing.T) {
		uploads := &fakeUploads{}
		h := newTestHandler(Services{Uploads: uploads})

		w := send(h, tokenFor(t, "u1"), "me.png", png)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://img.test/users/u1/me.png", decode(t, w)["publicUrl"])
		assert.Equal(t, png, uploads.got)
	})

	t.Run("Too large", func(t *testing.T) {
		uploads := &fakeUploads{}
		h := newTestHandler(Services{Uploads: uploads})

		w := send(h, tokenFor(t, "u1"), "big.png", append(png, make([]byte, upload.MaxFileSize)...))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, uploads.got)
	})

	t.Run("Oversized body is cut off", func(t *testing.T) {
		uploads := &fakeUploads{}
		h := newTestHandler(Services{Uploads: uploads})

		w := send(h, tokenFor(t, "u1"), "huge.png", append(png, make([]byte, 8*upload.MaxFileSize)...))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, uploads.got)
	})

	t.Run("Wrong type", func(t *testing.T) {
		h := newTestHandler(Services{Uploads: &fakeUploads{}})

		w := send(h, tokenFor(t, "u1"), "notes.txt", []byte("just some text"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Other user", func(t *testing.T) {
		h := newTestHandler(Services{Uploads: &fakeUploads{}})

		w := send(h, tokenFor(t, "u2"), "me.png", png)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestSeed(t *testing.T) {
	t.Run("Enabled", func(t *testing.T) {
		h := newTestHandler(Services{Seed: fakeSeeder{}})
		w := do(h, http.MethodGet, "/seed", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["createdUsers"], 1)
	})

	t.Run("Production", func(t *testing.T) {
		h := newTestHandler(Services{Seed: fakeSeeder{err: seed.ErrDisabled}})
		w := do(h, http.MethodGet, "/seed", nil, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestWelcome(t *testing.T) {
	h := newTestHandler(Services{})
	w := do(h, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "StockStores")
}
