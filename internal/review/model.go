package review

import (
	"time"

	"stockstores-be/internal/product"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID             string    `json:"_id"`
	ProductID      string    `json:"productId"`
	UserID         string    `json:"userId"`
	UserFirstName  string    `json:"userFirstName"`
	UserLastName   string    `json:"userLastName"`
	UserPictureURL string    `json:"userPictureURL"`
	Rating         int       `json:"rating"`
	Comment        *string   `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreateReviewInput struct {
	ProductID      string `json:"productId"`
	UserID         string `json:"userId"`
	UserFirstName  string `json:"userFirstName"`
	UserLastName   string `json:"userLastName"`
	UserPictureURL string `json:"userPictureURL"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment"`
}

type UpdateReviewInput struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// ReviewUpdate is what the repository applies. UnsetComment removes the
// comment and wins over Comment.
type ReviewUpdate struct {
	Rating       *int
	Comment      *string
	UnsetComment bool
}

func (u ReviewUpdate) IsEmpty() bool {
	return u.Rating == nil && u.Comment == nil && !u.UnsetComment
}

// UserInfo is the user display snapshot copied onto reviews.
type UserInfo struct {
	UserFirstName  *string `json:"userFirstName"`
	UserLastName   *string `json:"userLastName"`
	UserPictureURL *string `json:"userPictureURL"`
}

func (u UserInfo) IsEmpty() bool {
	return u.UserFirstName == nil && u.UserLastName == nil && u.UserPictureURL == nil
}

type CreateResult struct {
	Review         *Review          `json:"review"`
	UpdatedProduct *product.Product `json:"updatedProduct"`
}
