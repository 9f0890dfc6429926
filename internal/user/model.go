package user

import (
	"time"

	"stockstores-be/internal/auth"
)

type User struct {
	ID         string    `json:"_id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	ResetToken *string   `json:"-"`
	PictureURL string    `json:"pictureURL"`
	IsSeller   bool      `json:"isSeller"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (u *User) Identity() auth.Identity {
	return auth.Identity{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// AuthResponse is what signup, login and account updates send back.
type AuthResponse struct {
	ID         string `json:"_id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	IsSeller   bool   `json:"isSeller"`
	PictureURL string `json:"pictureURL"`
	Token      string `json:"token"`
}

type SignupInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsSeller  bool   `json:"isSeller"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserInput changes account fields. Blank fields are left alone;
// CurrentPassword must always match.
type UpdateUserInput struct {
	CurrentPassword string `json:"currentPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
}

type ResetPasswordInput struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}
