package model

// MeanRating is the denormalized product rating: the arithmetic mean
// of the surviving review ratings, 0 when none remain.
func MeanRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
