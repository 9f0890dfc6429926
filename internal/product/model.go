package product

import "time"

type Product struct {
	ID                  string    `json:"_id"`
	StoreID             string    `json:"storeId"`
	ProductSlug         string    `json:"productSlug"`
	ProductName         string    `json:"productName"`
	ProductDescription  string    `json:"productDescription"`
	ProductPrice        float64   `json:"productPrice"`
	ProductBrand        string    `json:"productBrand"`
	ProductCategory     string    `json:"productCategory"`
	StockAmount         int       `json:"stockAmount"`
	ReviewsAmount       int       `json:"reviewsAmount"`
	AverageRating       float64   `json:"averageRating"`
	LeadImageURL        string    `json:"leadImageURL"`
	ImagesCollectionURL []string  `json:"imagesCollectionURL"`
	IsFeatured          bool      `json:"isFeatured"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type CreateProductInput struct {
	StoreID             string   `json:"storeId"`
	ProductName         string   `json:"productName"`
	ProductDescription  string   `json:"productDescription"`
	ProductPrice        float64  `json:"productPrice"`
	ProductBrand        string   `json:"productBrand"`
	ProductCategory     string   `json:"productCategory"`
	StockAmount         int      `json:"stockAmount"`
	LeadImageURL        string   `json:"leadImageURL"`
	ImagesCollectionURL []string `json:"imagesCollectionURL"`
	IsFeatured          bool     `json:"isFeatured"`
}

// ProductUpdate is a partial update; nil fields are left untouched. Slug,
// store and review aggregates are not writable here.
type ProductUpdate struct {
	ProductName         *string   `json:"productName"`
	ProductDescription  *string   `json:"productDescription"`
	ProductPrice        *float64  `json:"productPrice"`
	ProductBrand        *string   `json:"productBrand"`
	ProductCategory     *string   `json:"productCategory"`
	StockAmount         *int      `json:"stockAmount"`
	LeadImageURL        *string   `json:"leadImageURL"`
	ImagesCollectionURL *[]string `json:"imagesCollectionURL"`
	IsFeatured          *bool     `json:"isFeatured"`
}

func (u ProductUpdate) IsEmpty() bool {
	return u.ProductName == nil &&
		u.ProductDescription == nil &&
		u.ProductPrice == nil &&
		u.ProductBrand == nil &&
		u.ProductCategory == nil &&
		u.StockAmount == nil &&
		u.LeadImageURL == nil &&
		u.ImagesCollectionURL == nil &&
		u.IsFeatured == nil
}

type StoreProducts struct {
	StoreName            string    `json:"storeName"`
	AllProductsFromStore []Product `json:"allProductsFromStore"`
}
