package engine

import (
	"math"
	"testing"

	"dealfinder/internal/model"
)

func TestNormalizeClampsBadValues(t *testing.T) {
	p := &model.Product{
		Title:        "Broken listing",
		Price:        model.Number(-20),
		Rating:       model.Number(math.NaN()),
		Reviews:      -5,
		SellerRating: model.Number(math.Inf(1)),
	}
	p.SetShipping(-3)

	Normalize(p)

	if p.Price != 0 {
		t.Errorf("Price = %v; want 0", p.Price)
	}
	if p.Rating != 0 {
		t.Errorf("Rating = %v; want 0", p.Rating)
	}
	if p.Reviews != 0 {
		t.Errorf("Reviews = %v; want 0", p.Reviews)
	}
	if p.SellerRating != 0 {
		t.Errorf("SellerRating = %v; want 0", p.SellerRating)
	}
	if !p.HasShipping() || p.ShippingCost() != 0 {
		t.Errorf("Shipping = %v; want explicit 0", p.Shipping)
	}
}

func TestNormalizeKeepsGoodValues(t *testing.T) {
	p := &model.Product{Price: 129.99, Rating: 4.5, Reviews: 230, SellerRating: 97}

	Normalize(p)

	if float64(p.Price) != 129.99 || float64(p.Rating) != 4.5 || int(p.Reviews) != 230 {
		t.Errorf("valid fields were altered: %+v", p)
	}
	if p.HasShipping() {
		t.Error("absent shipping must stay absent")
	}
}
