package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FirstName  string             `bson:"firstName"`
	LastName   string             `bson:"lastName"`
	Email      string             `bson:"email"`
	Password   string             `bson:"password"`
	ResetToken *string            `bson:"resetToken,omitempty"`
	PictureURL string             `bson:"pictureURL"`
	IsSeller   bool               `bson:"isSeller"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func toDocument(u *User) userDocument {
	doc := userDocument{
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Password:   u.Password,
		ResetToken: u.ResetToken,
		PictureURL: u.PictureURL,
		IsSeller:   u.IsSeller,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func (d userDocument) toUser() *User {
	return &User{
		ID:         d.ID.Hex(),
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Email:      d.Email,
		Password:   d.Password,
		ResetToken: d.ResetToken,
		PictureURL: d.PictureURL,
		IsSeller:   d.IsSeller,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
