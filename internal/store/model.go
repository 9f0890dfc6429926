package store

import "time"

type Address struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Department string `json:"department"`
}

type Store struct {
	ID               string    `json:"_id"`
	SellerID         string    `json:"sellerId"`
	SellerFirstName  string    `json:"sellerFirstName"`
	SellerLastName   string    `json:"sellerLastName"`
	SellerPictureURL string    `json:"sellerPictureURL"`
	StoreSlug        string    `json:"storeSlug"`
	StoreName        string    `json:"storeName"`
	StoreDescription string    `json:"storeDescription"`
	StorePhoneNumber string    `json:"storePhoneNumber"`
	StoreAddress     Address   `json:"storeAddress"`
	StoreImageURL    string    `json:"storeImageURL"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type CreateStoreInput struct {
	SellerID         string  `json:"sellerId"`
	SellerFirstName  string  `json:"sellerFirstName"`
	SellerLastName   string  `json:"sellerLastName"`
	SellerPictureURL string  `json:"sellerPictureURL"`
	StoreName        string  `json:"storeName"`
	StoreDescription string  `json:"storeDescription"`
	StorePhoneNumber string  `json:"storePhoneNumber"`
	StoreAddress     Address `json:"storeAddress"`
	StoreImageURL    string  `json:"storeImageURL"`
}

// StoreUpdate is a partial update. The slug is fixed at creation.
type StoreUpdate struct {
	StoreName        *string  `json:"storeName"`
	StoreDescription *string  `json:"storeDescription"`
	StorePhoneNumber *string  `json:"storePhoneNumber"`
	StoreAddress     *Address `json:"storeAddress"`
	StoreImageURL    *string  `json:"storeImageURL"`
}

func (u StoreUpdate) IsEmpty() bool {
	return u.StoreName == nil && u.StoreDescription == nil && u.StorePhoneNumber == nil &&
		u.StoreAddress == nil && u.StoreImageURL == nil
}

// SellerInfo is the seller display snapshot copied onto stores.
type SellerInfo struct {
	SellerFirstName  *string `json:"sellerFirstName"`
	SellerLastName   *string `json:"sellerLastName"`
	SellerPictureURL *string `json:"sellerPictureURL"`
}

func (i SellerInfo) IsEmpty() bool {
	return i.SellerFirstName == nil && i.SellerLastName == nil && i.SellerPictureURL == nil
}
