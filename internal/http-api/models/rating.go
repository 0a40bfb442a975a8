package models

// AggregateRating computes a title's aggregate rating from its review
// scores: floor(sum/count). A title with no reviews has no rating, so the
// result is nil rather than a division by zero.
func AggregateRating(scores []int) *int {
	if len(scores) == 0 {
		return nil
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	rating := sum / len(scores)
	return &rating
}
