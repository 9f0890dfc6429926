// Package rating derives a product's review aggregates from its ratings.
package rating

// Summary holds a product's aggregate review fields.
type Summary struct {
	AverageRating float64 `json:"averageRating"`
	ReviewsAmount int     `json:"reviewsAmount"`
}

// Compute returns the count and the plain mean of ratings, 0 when empty.
func Compute(ratings []int) Summary {
	if len(ratings) == 0 {
		return Summary{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	return Summary{
		AverageRating: float64(sum) / float64(len(ratings)),
		ReviewsAmount: len(ratings),
	}
}
