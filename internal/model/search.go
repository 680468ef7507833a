package model

import "encoding/json"

// SearchParams is the structured user intent extracted from a natural
// language query. Every field is optional; the engine skips scoring terms
// whose source field is absent.
type SearchParams struct {
	ProductType       string      `json:"product_type,omitempty"`
	Keywords          StringList  `json:"keywords,omitempty"`
	PriceRange        *PriceRange `json:"price_range,omitempty"`
	Brands            StringList  `json:"brands,omitempty"`
	Features          StringList  `json:"features,omitempty"`
	SortingPreference string      `json:"sorting_preference,omitempty"`
	BuyItNow          bool        `json:"buy_it_now,omitempty"`
}

// PriceRange is an optional (min, max) bound pair. Either side may be nil.
// On the wire it is the two-element array the query parser emits:
// [50, 100], [null, 100], ["50", null].
type PriceRange struct {
	Min *float64
	Max *float64
}

// NewPriceRange builds a range from optional bounds; pass a negative value
// to leave a side open.
func NewPriceRange(min, max float64) *PriceRange {
	r := &PriceRange{}
	if min >= 0 {
		r.Min = &min
	}
	if max >= 0 {
		r.Max = &max
	}
	return r
}

func (r *PriceRange) UnmarshalJSON(data []byte) error {
	var bounds []Number
	if err := json.Unmarshal(data, &bounds); err != nil {
		// Not an array; treat as no usable range.
		return nil
	}
	var raw []json.RawMessage
	_ = json.Unmarshal(data, &raw)
	for i, b := range bounds {
		if i >= 2 || i >= len(raw) {
			break
		}
		if string(raw[i]) == "null" {
			continue
		}
		v := float64(b)
		if i == 0 {
			r.Min = &v
		} else {
			r.Max = &v
		}
	}
	return nil
}

func (r *PriceRange) MarshalJSON() ([]byte, error) {
	bounds := []*float64{r.Min, r.Max}
	return json.Marshal(bounds)
}

// StringList accepts either a JSON array of strings or a single string, as
// the query LLM is not consistent about which it returns.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err == nil && one != "" {
		*l = []string{one}
	}
	return nil
}
