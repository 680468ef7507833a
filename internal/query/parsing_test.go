package query

import (
	"testing"

	"dealfinder/internal/logging"
	"dealfinder/internal/model"
)

func TestParsePriceRange(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		text string
		min  *float64
		max  *float64
	}{
		{"under dollar", "headphones under $100", nil, f(100)},
		{"less than", "laptop less than 800", nil, f(800)},
		{"below decimal", "mouse below $25.50", nil, f(25.50)},
		{"over", "watch over $200", f(200), nil},
		{"at least", "tv at least 500", f(500), nil},
		{"plus suffix", "camera $300+", f(300), nil},
		{"dash span", "blender $50-$100", f(50), f(100)},
		{"to span", "keyboard 40 to 90", f(40), f(90)},
		{"between and", "speakers between $30 and $80", f(30), f(80)},
		{"no price", "wireless headphones", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePriceRange(tt.text)
			if tt.min == nil && tt.max == nil {
				if got != nil {
					t.Fatalf("ParsePriceRange(%q) = %+v, want nil", tt.text, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParsePriceRange(%q) = nil", tt.text)
			}
			checkBound(t, "min", got.Min, tt.min)
			checkBound(t, "max", got.Max, tt.max)
		})
	}
}

func checkBound(t *testing.T, side string, got, want *float64) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Errorf("%s = %v, want unset", side, *got)
	case want != nil && got == nil:
		t.Errorf("%s unset, want %v", side, *want)
	case want != nil && *got != *want:
		t.Errorf("%s = %v, want %v", side, *got, *want)
	}
}

func TestParseSortPreference(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"cheapest wireless earbuds", "price_low_to_high"},
		{"sort by price low first", "price_low_to_high"},
		{"most expensive watches", "price_high_to_low"},
		{"best rated air fryer", "rating"},
		{"sort by reviews", "rating"},
		{"newest gaming laptops", "newest"},
		{"wireless headphones", ""},
	}
	for _, tt := range tests {
		if got := ParseSortPreference(tt.text); got != tt.want {
			t.Errorf("ParseSortPreference(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestFallbackBuildsKeywords(t *testing.T) {
	params := Fallback("find me the best deals on wireless headphones under $100")

	want := []string{"wireless", "headphones"}
	if len(params.Keywords) != len(want) {
		t.Fatalf("keywords = %v, want %v", params.Keywords, want)
	}
	for i, kw := range want {
		if params.Keywords[i] != kw {
			t.Errorf("keywords[%d] = %q, want %q", i, params.Keywords[i], kw)
		}
	}
	if params.ProductType != "headphones" {
		t.Errorf("product type = %q, want headphones", params.ProductType)
	}
	if params.PriceRange == nil || params.PriceRange.Max == nil || *params.PriceRange.Max != 100 {
		t.Errorf("price range = %+v, want max 100", params.PriceRange)
	}
}

func TestDecodeParamsStripsFences(t *testing.T) {
	raws := []string{
		`{"product_type": "headphones", "keywords": ["wireless"], "price_range": [null, 100]}`,
		"```json\n{\"product_type\": \"headphones\", \"keywords\": [\"wireless\"], \"price_range\": [null, 100]}\n```",
		"```\n{\"product_type\": \"headphones\", \"keywords\": \"wireless\", \"price_range\": [null, \"100\"]}\n```",
	}
	for _, raw := range raws {
		params, err := decodeParams(raw)
		if err != nil {
			t.Fatalf("decodeParams(%q) error: %v", raw, err)
		}
		if params.ProductType != "headphones" {
			t.Errorf("product type = %q", params.ProductType)
		}
		if len(params.Keywords) != 1 || params.Keywords[0] != "wireless" {
			t.Errorf("keywords = %v", params.Keywords)
		}
		if params.PriceRange == nil || params.PriceRange.Max == nil || *params.PriceRange.Max != 100 {
			t.Errorf("price range = %+v", params.PriceRange)
		}
	}
}

func TestNormalizeParamsFixesInvalidSort(t *testing.T) {
	params := normalizeParams(&model.SearchParams{
		ProductType:       "laptop",
		SortingPreference: "by_vibes",
	}, "laptop")
	if params.SortingPreference != "price_low_to_high" {
		t.Errorf("sorting preference = %q, want price_low_to_high", params.SortingPreference)
	}
}

func TestParserNilClientUsesFallback(t *testing.T) {
	p := NewParser(nil, logging.Discard())
	params := p.Parse(t.Context(), "gaming mouse under $60")
	if params == nil {
		t.Fatal("nil params")
	}
	if params.PriceRange == nil || params.PriceRange.Max == nil || *params.PriceRange.Max != 60 {
		t.Errorf("price range = %+v, want max 60", params.PriceRange)
	}
}
