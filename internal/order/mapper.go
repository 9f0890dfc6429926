package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type itemDocument struct {
	ProductID        string  `bson:"productId"`
	ProductSlug      string  `bson:"productSlug"`
	ProductName      string  `bson:"productName"`
	ProductLeadImage string  `bson:"productLeadImage"`
	ProductPrice     float64 `bson:"productPrice"`
	Quantity         int     `bson:"quantity"`
	ItemPrice        float64 `bson:"itemPrice"`
}

type shippingDocument struct {
	FullName           string `bson:"fullName"`
	Address            string `bson:"address"`
	City               string `bson:"city"`
	Department         string `bson:"department"`
	ContactPhoneNumber string `bson:"contactPhoneNumber"`
}

type orderDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          string             `bson:"userId"`
	StoreID         string             `bson:"storeId"`
	StoreSlug       string             `bson:"storeSlug"`
	StoreName       string             `bson:"storeName"`
	StoreImageURL   string             `bson:"storeImageURL"`
	OrderStatus     string             `bson:"orderStatus"`
	OrderItems      []itemDocument     `bson:"orderItems"`
	ShippingAddress shippingDocument   `bson:"shippingAddress"`
	ItemsPrice      float64            `bson:"itemsPrice"`
	ShippingPrice   float64            `bson:"shippingPrice"`
	TotalPrice      float64            `bson:"totalPrice"`
	PaymentMethod   string             `bson:"paymentMethod"`
	PaidAt          *time.Time         `bson:"paidAt,omitempty"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func toShippingDocument(a ShippingAddress) shippingDocument {
	return shippingDocument{
		FullName:           a.FullName,
		Address:            a.Address,
		City:               a.City,
		Department:         a.Department,
		ContactPhoneNumber: a.ContactPhoneNumber,
	}
}

func toDocument(o *Order) orderDocument {
	items := make([]itemDocument, 0, len(o.OrderItems))
	for _, it := range o.OrderItems {
		items = append(items, itemDocument{
			ProductID:        it.ProductID,
			ProductSlug:      it.ProductSlug,
			ProductName:      it.ProductName,
			ProductLeadImage: it.ProductLeadImage,
			ProductPrice:     it.ProductPrice,
			Quantity:         it.Quantity,
			ItemPrice:        it.ItemPrice,
		})
	}
	return orderDocument{
		UserID:          o.UserID,
		StoreID:         o.StoreID,
		StoreSlug:       o.StoreSlug,
		StoreName:       o.StoreName,
		StoreImageURL:   o.StoreImageURL,
		OrderStatus:     string(o.OrderStatus),
		OrderItems:      items,
		ShippingAddress: toShippingDocument(o.ShippingAddress),
		ItemsPrice:      o.ItemsPrice,
		ShippingPrice:   o.ShippingPrice,
		TotalPrice:      o.TotalPrice,
		PaymentMethod:   o.PaymentMethod,
		PaidAt:          o.PaidAt,
		DeliveredAt:     o.DeliveredAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func (d orderDocument) toOrder() *Order {
	items := make([]OrderItem, 0, len(d.OrderItems))
	for _, it := range d.OrderItems {
		items = append(items, OrderItem{
			ProductID:        it.ProductID,
			ProductSlug:      it.ProductSlug,
			ProductName:      it.ProductName,
			ProductLeadImage: it.ProductLeadImage,
			ProductPrice:     it.ProductPrice,
			Quantity:         it.Quantity,
			ItemPrice:        it.ItemPrice,
		})
	}
	return &Order{
		ID:            d.ID.Hex(),
		UserID:        d.UserID,
		StoreID:       d.StoreID,
		StoreSlug:     d.StoreSlug,
		StoreName:     d.StoreName,
		StoreImageURL: d.StoreImageURL,
		OrderStatus:   Status(d.OrderStatus),
		OrderItems:    items,
		ShippingAddress: ShippingAddress{
			FullName:           d.ShippingAddress.FullName,
			Address:            d.ShippingAddress.Address,
			City:               d.ShippingAddress.City,
			Department:         d.ShippingAddress.Department,
			ContactPhoneNumber: d.ShippingAddress.ContactPhoneNumber,
		},
		ItemsPrice:    d.ItemsPrice,
		ShippingPrice: d.ShippingPrice,
		TotalPrice:    d.TotalPrice,
		PaymentMethod: d.PaymentMethod,
		PaidAt:        d.PaidAt,
		DeliveredAt:   d.DeliveredAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func updateSet(u OrderUpdate, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if u.OrderStatus != nil {
		set["orderStatus"] = string(*u.OrderStatus)
	}
	if u.PaymentMethod != nil {
		set["paymentMethod"] = *u.PaymentMethod
	}
	if u.ShippingAddress != nil {
		set["shippingAddress"] = toShippingDocument(*u.ShippingAddress)
	}
	if u.PaidAt != nil {
		set["paidAt"] = *u.PaidAt
	}
	if u.DeliveredAt != nil {
		set["deliveredAt"] = *u.DeliveredAt
	}
	return set
}

func storeInfoSet(info StoreInfo, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if info.StoreName != nil {
		set["storeName"] = *info.StoreName
	}
	if info.StoreSlug != nil {
		set["storeSlug"] = *info.StoreSlug
	}
	if info.StoreImageURL != nil {
		set["storeImageURL"] = *info.StoreImageURL
	}
	return set
}
