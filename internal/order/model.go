package order

import (
	"time"

	"stockstores-be/internal/stock"
)

type Status string

const (
	StatusAwaitingApproval   Status = "Awaiting Seller Approval"
	StatusWaitingForPayment  Status = "Waiting for Payment"
	StatusWaitingForDelivery Status = "Waiting for Delivery"
	StatusDelivered          Status = "Delivered"
	StatusCancelled          Status = "Cancelled"
	StatusRejected           Status = "Rejected by Seller"
)

var AllStatuses = []Status{
	StatusAwaitingApproval,
	StatusWaitingForPayment,
	StatusWaitingForDelivery,
	StatusDelivered,
	StatusCancelled,
	StatusRejected,
}

func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ReleasesStock reports whether moving an order into s gives its items back
// to the store.
func (s Status) ReleasesStock() bool {
	return s == StatusCancelled || s == StatusRejected
}

// OrderItem is a snapshot of the product at purchase time.
type OrderItem struct {
	ProductID        string  `json:"productId"`
	ProductSlug      string  `json:"productSlug"`
	ProductName      string  `json:"productName"`
	ProductLeadImage string  `json:"productLeadImage"`
	ProductPrice     float64 `json:"productPrice"`
	Quantity         int     `json:"quantity"`
	ItemPrice        float64 `json:"itemPrice"`
}

type ShippingAddress struct {
	FullName           string `json:"fullName"`
	Address            string `json:"address"`
	City               string `json:"city"`
	Department         string `json:"department"`
	ContactPhoneNumber string `json:"contactPhoneNumber"`
}

type Order struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userId"`
	StoreID         string          `json:"storeId"`
	StoreSlug       string          `json:"storeSlug"`
	StoreName       string          `json:"storeName"`
	StoreImageURL   string          `json:"storeImageURL"`
	OrderStatus     Status          `json:"orderStatus"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Lines returns the stock movements the order's items stand for.
func (o *Order) Lines() []stock.Line {
	return itemLines(o.OrderItems)
}

func itemLines(items []OrderItem) []stock.Line {
	lines := make([]stock.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, stock.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines
}

type CreateOrderInput struct {
	UserID          string          `json:"userId"`
	StoreID         string          `json:"storeId"`
	StoreSlug       string          `json:"storeSlug"`
	StoreName       string          `json:"storeName"`
	StoreImageURL   string          `json:"storeImageURL"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// OrderUpdate is a partial update; nil fields are left alone.
type OrderUpdate struct {
	OrderStatus     *Status          `json:"orderStatus"`
	PaymentMethod   *string          `json:"paymentMethod"`
	ShippingAddress *ShippingAddress `json:"shippingAddress"`
	PaidAt          *time.Time       `json:"paidAt"`
	DeliveredAt     *time.Time       `json:"deliveredAt"`
}

func (u OrderUpdate) IsEmpty() bool {
	return u.OrderStatus == nil && u.PaymentMethod == nil && u.ShippingAddress == nil &&
		u.PaidAt == nil && u.DeliveredAt == nil
}

// StoreInfo is the store display snapshot copied onto orders.
type StoreInfo struct {
	StoreName     *string `json:"storeName"`
	StoreSlug     *string `json:"storeSlug"`
	StoreImageURL *string `json:"storeImageURL"`
}

func (i StoreInfo) IsEmpty() bool {
	return i.StoreName == nil && i.StoreSlug == nil && i.StoreImageURL == nil
}

type StoreOrders struct {
	StoreName          string  `json:"storeName"`
	StoreSlug          string  `json:"storeSlug"`
	AllOrdersFromStore []Order `json:"allOrdersFromStore"`
}
