package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productDocument struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	StoreID             string             `bson:"storeId"`
	ProductSlug         string             `bson:"productSlug"`
	ProductName         string             `bson:"productName"`
	ProductDescription  string             `bson:"productDescription"`
	ProductPrice        float64            `bson:"productPrice"`
	ProductBrand        string             `bson:"productBrand"`
	ProductCategory     string             `bson:"productCategory"`
	StockAmount         int                `bson:"stockAmount"`
	ReviewsAmount       int                `bson:"reviewsAmount"`
	AverageRating       float64            `bson:"averageRating"`
	LeadImageURL        string             `bson:"leadImageURL"`
	ImagesCollectionURL []string           `bson:"imagesCollectionURL"`
	IsFeatured          bool               `bson:"isFeatured"`
	CreatedAt           time.Time          `bson:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt"`
}

func toDocument(p *Product) productDocument {
	return productDocument{
		StoreID:             p.StoreID,
		ProductSlug:         p.ProductSlug,
		ProductName:         p.ProductName,
		ProductDescription:  p.ProductDescription,
		ProductPrice:        p.ProductPrice,
		ProductBrand:        p.ProductBrand,
		ProductCategory:     p.ProductCategory,
		StockAmount:         p.StockAmount,
		ReviewsAmount:       p.ReviewsAmount,
		AverageRating:       p.AverageRating,
		LeadImageURL:        p.LeadImageURL,
		ImagesCollectionURL: p.ImagesCollectionURL,
		IsFeatured:          p.IsFeatured,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func (d productDocument) toProduct() *Product {
	images := d.ImagesCollectionURL
	if images == nil {
		images = []string{}
	}
	return &Product{
		ID:                  d.ID.Hex(),
		StoreID:             d.StoreID,
		ProductSlug:         d.ProductSlug,
		ProductName:         d.ProductName,
		ProductDescription:  d.ProductDescription,
		ProductPrice:        d.ProductPrice,
		ProductBrand:        d.ProductBrand,
		ProductCategory:     d.ProductCategory,
		StockAmount:         d.StockAmount,
		ReviewsAmount:       d.ReviewsAmount,
		AverageRating:       d.AverageRating,
		LeadImageURL:        d.LeadImageURL,
		ImagesCollectionURL: images,
		IsFeatured:          d.IsFeatured,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

// updateSet turns a partial update into a $set document.
func updateSet(u ProductUpdate, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if u.ProductName != nil {
		set["productName"] = *u.ProductName
	}
	if u.ProductDescription != nil {
		set["productDescription"] = *u.ProductDescription
	}
	if u.ProductPrice != nil {
		set["productPrice"] = *u.ProductPrice
	}
	if u.ProductBrand != nil {
		set["productBrand"] = *u.ProductBrand
	}
	if u.ProductCategory != nil {
		set["productCategory"] = *u.ProductCategory
	}
	if u.StockAmount != nil {
		set["stockAmount"] = *u.StockAmount
	}
	if u.LeadImageURL != nil {
		set["leadImageURL"] = *u.LeadImageURL
	}
	if u.ImagesCollectionURL != nil {
		set["imagesCollectionURL"] = *u.ImagesCollectionURL
	}
	if u.IsFeatured != nil {
		set["isFeatured"] = *u.IsFeatured
	}
	return set
}
