package review

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type reviewDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ProductID      string             `bson:"productId"`
	UserID         string             `bson:"userId"`
	UserFirstName  string             `bson:"userFirstName"`
	UserLastName   string             `bson:"userLastName"`
	UserPictureURL string             `bson:"userPictureURL"`
	Rating         int                `bson:"rating"`
	Comment        *string            `bson:"comment,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func toDocument(r *Review) reviewDocument {
	return reviewDocument{
		ProductID:      r.ProductID,
		UserID:         r.UserID,
		UserFirstName:  r.UserFirstName,
		UserLastName:   r.UserLastName,
		UserPictureURL: r.UserPictureURL,
		Rating:         r.Rating,
		Comment:        r.Comment,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (d reviewDocument) toReview() *Review {
	return &Review{
		ID:             d.ID.Hex(),
		ProductID:      d.ProductID,
		UserID:         d.UserID,
		UserFirstName:  d.UserFirstName,
		UserLastName:   d.UserLastName,
		UserPictureURL: d.UserPictureURL,
		Rating:         d.Rating,
		Comment:        d.Comment,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func updateDocument(u ReviewUpdate, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if u.Rating != nil {
		set["rating"] = *u.Rating
	}
	update := bson.M{}
	if u.UnsetComment {
		update["$unset"] = bson.M{"comment": ""}
	} else if u.Comment != nil {
		set["comment"] = *u.Comment
	}
	update["$set"] = set
	return update
}

func userInfoSet(info UserInfo, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if info.UserFirstName != nil {
		set["userFirstName"] = *info.UserFirstName
	}
	if info.UserLastName != nil {
		set["userLastName"] = *info.UserLastName
	}
	if info.UserPictureURL != nil {
		set["userPictureURL"] = *info.UserPictureURL
	}
	return set
}
