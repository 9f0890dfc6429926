package address

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type addressDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	UserID             string             `bson:"userId"`
	FullName           string             `bson:"fullName"`
	Address            string             `bson:"address"`
	City               string             `bson:"city"`
	Department         string             `bson:"department"`
	ContactPhoneNumber string             `bson:"contactPhoneNumber"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
}

func toDocument(a *Address) addressDocument {
	return addressDocument{
		UserID:             a.UserID,
		FullName:           a.FullName,
		Address:            a.Address,
		City:               a.City,
		Department:         a.Department,
		ContactPhoneNumber: a.ContactPhoneNumber,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func (d addressDocument) toAddress() *Address {
	return &Address{
		ID:                 d.ID.Hex(),
		UserID:             d.UserID,
		FullName:           d.FullName,
		Address:            d.Address,
		City:               d.City,
		Department:         d.Department,
		ContactPhoneNumber: d.ContactPhoneNumber,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func updateSet(u AddressUpdate, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if u.FullName != nil {
		set["fullName"] = *u.FullName
	}
	if u.Address != nil {
		set["address"] = *u.Address
	}
	if u.City != nil {
		set["city"] = *u.City
	}
	if u.Department != nil {
		set["department"] = *u.Department
	}
	if u.ContactPhoneNumber != nil {
		set["contactPhoneNumber"] = *u.ContactPhoneNumber
	}
	return set
}
