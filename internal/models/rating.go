package models

import "math"

// Rating computes the arithmetic mean of review scores rounded to one
// decimal place. It returns nil when there are no scores: a title without
// reviews has no rating, not a zero rating.
func Rating(scores []int) *float64 {
	if len(scores) == 0 {
		return nil
	}
	var sum int
	for _, s := range scores {
		sum += s
	}
	mean := float64(sum) / float64(len(scores))
	r := math.Round(mean*10) / 10
	return &r
}
