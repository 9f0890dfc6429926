package user

import "golang.org/x/crypto/bcrypt"

// DefaultHashCost is the bcrypt cost used for stored passwords.
const DefaultHashCost = 12

func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
