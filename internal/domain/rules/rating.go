package rules

import (
	"math"

	"pawmarket/pkg/errors"
)

func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errors.InvalidArgument("rating must be between 1 and 5", nil)
	}
	return nil
}

// AverageRating rounds to one decimal; zero ratings average to 0.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return math.Round(float64(sum)/float64(len(ratings))*10) / 10
}
