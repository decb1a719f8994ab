package search

import "math"

// Query-string keys recognised by the codec, in canonical encode order.
const (
	KeySort     = "sort"
	KeySize     = "size"
	KeyBrand    = "brand"
	KeyStyle    = "style"
	KeyMinPrice = "minPrice"
	KeyMaxPrice = "maxPrice"
	KeyPage     = "page"
	KeyLimit    = "limit"
)

const (
	DefaultMaxPrice = 30000
	DefaultLimit    = 20
	MaxLimit        = 100

	// MaxPage keeps Page*MaxLimit inside an int.
	MaxPage = math.MaxInt / MaxLimit
)

// Filter is one product listing query. It is rebuilt from the URL on every
// request and never stored.
type Filter struct {
	Sort     string   `json:"sort"`
	Size     []string `json:"size"`
	Brand    []string `json:"brand"`
	Style    []string `json:"style"`
	MinPrice int      `json:"minPrice"`
	MaxPrice int      `json:"maxPrice"`
	Page     int      `json:"page"`
	Limit    int      `json:"limit"`
}

// Default returns the filter an empty query string decodes to.
func Default() Filter {
	return Filter{
		Size:     []string{},
		Brand:    []string{},
		Style:    []string{},
		MaxPrice: DefaultMaxPrice,
		Limit:    DefaultLimit,
	}
}

// Offset is the number of rows the listing query skips. It saturates at
// math.MaxInt instead of overflowing.
func (f Filter) Offset() int {
	if f.Page <= 0 || f.Limit <= 0 {
		return 0
	}
	if f.Page > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return f.Page * f.Limit
}

// IsDefault reports whether every field holds its default value.
func (f Filter) IsDefault() bool {
	return f.Sort == "" &&
		len(f.Size) == 0 && len(f.Brand) == 0 && len(f.Style) == 0 &&
		f.MinPrice == 0 && f.MaxPrice == DefaultMaxPrice &&
		f.Page == 0 && f.Limit == DefaultLimit
}
