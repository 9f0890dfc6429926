package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	purposeAccess = "access"
	purposeReset  = "reset"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the part of a user embedded in access tokens.
type Identity struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type CustomClaims struct {
	Identity
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens with one secret.
type Issuer struct {
	secret   []byte
	ttl      time.Duration
	resetTTL time.Duration
	now      func() time.Time
}

func NewIssuer(secret string, ttl, resetTTL time.Duration) *Issuer {
	return &Issuer{
		secret:   []byte(secret),
		ttl:      ttl,
		resetTTL: resetTTL,
		now:      time.Now,
	}
}

// Generate returns an access token for id.
func (i *Issuer) Generate(id Identity) (string, error) {
	return i.sign(id, purposeAccess, i.ttl)
}

// GenerateReset returns a short-lived password reset token for id.
func (i *Issuer) GenerateReset(id Identity) (string, error) {
	return i.sign(id, purposeReset, i.resetTTL)
}

func (i *Issuer) Parse(tokenStr string) (*CustomClaims, error) {
	return i.parse(tokenStr, purposeAccess)
}

func (i *Issuer) ParseReset(tokenStr string) (*CustomClaims, error) {
	return i.parse(tokenStr, purposeReset)
}

func (i *Issuer) sign(id Identity, purpose string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := CustomClaims{
		Identity: id,
		Purpose:  purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) parse(tokenStr, purpose string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&CustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return i.secret, nil
		},
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Purpose != purpose || claims.Identity.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func ExtractAccessToken(r *http.Request) string {
	// Cookie first
	if cookie, err := r.Cookie("access_token"); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
