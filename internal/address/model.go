package address

import "time"

// Address is a delivery destination saved by a user for later orders.
type Address struct {
	ID                 string    `json:"_id"`
	UserID             string    `json:"userId"`
	FullName           string    `json:"fullName"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	Department         string    `json:"department"`
	ContactPhoneNumber string    `json:"contactPhoneNumber"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type CreateAddressInput struct {
	UserID             string `json:"userId"`
	FullName           string `json:"fullName"`
	Address            string `json:"address"`
	City               string `json:"city"`
	Department         string `json:"department"`
	ContactPhoneNumber string `json:"contactPhoneNumber"`
}

type AddressUpdate struct {
	FullName           *string `json:"fullName"`
	Address            *string `json:"address"`
	City               *string `json:"city"`
	Department         *string `json:"department"`
	ContactPhoneNumber *string `json:"contactPhoneNumber"`
}

func (u AddressUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Address == nil && u.City == nil &&
		u.Department == nil && u.ContactPhoneNumber == nil
}
