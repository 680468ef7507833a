package engine

import (
	"math"

	"dealfinder/internal/model"
)

// Normalize forces a listing's numeric fields into well-typed,
// non-negative values. String and null inputs have already been coerced by
// model.Number during decoding; this pass catches negatives, NaN and Inf
// from in-process construction. A malformed field is defaulted to zero so
// one bad listing never aborts the batch.
func Normalize(p *model.Product) {
	p.Price = model.Number(clampNonNegative(float64(p.Price)))
	p.Rating = model.Number(clampNonNegative(float64(p.Rating)))
	p.SellerRating = model.Number(clampNonNegative(float64(p.SellerRating)))
	if p.Reviews < 0 {
		p.Reviews = 0
	}
	if p.Shipping != nil {
		p.SetShipping(clampNonNegative(float64(*p.Shipping)))
	}
}

func clampNonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
