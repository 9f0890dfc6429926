package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type addressDocument struct {
	Address    string `bson:"address"`
	City       string `bson:"city"`
	Department string `bson:"department"`
}

type storeDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	SellerID         string             `bson:"sellerId"`
	SellerFirstName  string             `bson:"sellerFirstName"`
	SellerLastName   string             `bson:"sellerLastName"`
	SellerPictureURL string             `bson:"sellerPictureURL"`
	StoreSlug        string             `bson:"storeSlug"`
	StoreName        string             `bson:"storeName"`
	StoreDescription string             `bson:"storeDescription"`
	StorePhoneNumber string             `bson:"storePhoneNumber"`
	StoreAddress     addressDocument    `bson:"storeAddress"`
	StoreImageURL    string             `bson:"storeImageURL"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func toAddressDocument(a Address) addressDocument {
	return addressDocument{Address: a.Address, City: a.City, Department: a.Department}
}

func toDocument(s *Store) storeDocument {
	return storeDocument{
		SellerID:         s.SellerID,
		SellerFirstName:  s.SellerFirstName,
		SellerLastName:   s.SellerLastName,
		SellerPictureURL: s.SellerPictureURL,
		StoreSlug:        s.StoreSlug,
		StoreName:        s.StoreName,
		StoreDescription: s.StoreDescription,
		StorePhoneNumber: s.StorePhoneNumber,
		StoreAddress:     toAddressDocument(s.StoreAddress),
		StoreImageURL:    s.StoreImageURL,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (d storeDocument) toStore() *Store {
	return &Store{
		ID:               d.ID.Hex(),
		SellerID:         d.SellerID,
		SellerFirstName:  d.SellerFirstName,
		SellerLastName:   d.SellerLastName,
		SellerPictureURL: d.SellerPictureURL,
		StoreSlug:        d.StoreSlug,
		StoreName:        d.StoreName,
		StoreDescription: d.StoreDescription,
		StorePhoneNumber: d.StorePhoneNumber,
		StoreAddress: Address{
			Address:    d.StoreAddress.Address,
			City:       d.StoreAddress.City,
			Department: d.StoreAddress.Department,
		},
		StoreImageURL: d.StoreImageURL,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func updateSet(u StoreUpdate, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if u.StoreName != nil {
		set["storeName"] = *u.StoreName
	}
	if u.StoreDescription != nil {
		set["storeDescription"] = *u.StoreDescription
	}
	if u.StorePhoneNumber != nil {
		set["storePhoneNumber"] = *u.StorePhoneNumber
	}
	if u.StoreAddress != nil {
		set["storeAddress"] = toAddressDocument(*u.StoreAddress)
	}
	if u.StoreImageURL != nil {
		set["storeImageURL"] = *u.StoreImageURL
	}
	return set
}

func sellerInfoSet(info SellerInfo, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if info.SellerFirstName != nil {
		set["sellerFirstName"] = *info.SellerFirstName
	}
	if info.SellerLastName != nil {
		set["sellerLastName"] = *info.SellerLastName
	}
	if info.SellerPictureURL != nil {
		set["sellerPictureURL"] = *info.SellerPictureURL
	}
	return set
}
