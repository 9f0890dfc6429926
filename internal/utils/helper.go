package utils

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"
	"regexp"
	"strings"
)

var (
	specialCharsRegex = regexp.MustCompile(`[^a-z0-9\s-]+`)
	spacesRegex       = regexp.MustCompile(`\s+`)
	multiDashRegex    = regexp.MustCompile(`-+`)
)

const slugAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// TransformName lowercases name, strips special characters and joins words
// with hyphens.
func TransformName(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = specialCharsRegex.ReplaceAllString(slug, "")
	slug = spacesRegex.ReplaceAllString(slug, "-")
	slug = multiDashRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// GenerateSlug returns TransformName(name) with a random 10 character suffix.
func GenerateSlug(name string) string {
	return TransformName(name) + "-" + RandomString(10)
}

func RandomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(slugAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = slugAlphabet[idx.Int64()]
	}
	return string(b)
}

// NormalizeName capitalizes the first letter and lowercases the rest.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r := []rune(strings.ToLower(name))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
