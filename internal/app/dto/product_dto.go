package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mrops-br/catalog-api/internal/app/validation"
	"github.com/mrops-br/catalog-api/internal/domain"
	"github.com/shopspring/decimal"
)

// FormValue is a form field that may be sent as a JSON number or a JSON string.
// It keeps the raw text so the validator can do the coercion.
type FormValue string

// UnmarshalJSON accepts numbers, strings and null
func (v *FormValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a number or a string, got %s", b)
	}
	*v = FormValue(n.String())
	return nil
}

// ProductRequest represents the request to create or edit a product
type ProductRequest struct {
	Name        string    `json:"name"`
	Price       FormValue `json:"price"`
	Category    string    `json:"category"`
	Stock       FormValue `json:"stock"`
	Description *string   `json:"description"`
}

// ToForm converts the request into the validator's input
func (r *ProductRequest) ToForm() validation.ProductForm {
	return validation.ProductForm{
		Name:        r.Name,
		Price:       string(r.Price),
		Category:    r.Category,
		Stock:       string(r.Stock),
		Description: r.Description,
	}
}

// SearchRequest sets the catalog search query
type SearchRequest struct {
	Query string `json:"query"`
}

// PageRequest jumps to a page of the catalog view
type PageRequest struct {
	Page int `json:"page"`
}

// ViewModeRequest switches between grid and list display
type ViewModeRequest struct {
	Mode string `json:"mode"`
}

// ProductResponse represents the product response
type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	PriceDisplay string    `json:"price_display"`
	Category     string    `json:"category"`
	Stock        int       `json:"stock"`
	StockStatus  string    `json:"stock_status"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		PriceDisplay: FormatPrice(p.Price),
		Category:     p.Category,
		Stock:        p.Stock,
		StockStatus:  string(p.StockStatus()),
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
	}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}

// FormatPrice renders a stored price with two decimals. Rounding happens here
// only; the store keeps the exact value.
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).StringFixed(2)
}

// PageSummaryResponse is the "showing start to end of total" line
type PageSummaryResponse struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Total int `json:"total"`
}

// PageLinkResponse is one pagination control entry; Page is 0 for an ellipsis
type PageLinkResponse struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// CatalogViewResponse represents one page of the catalog and the view state behind it
type CatalogViewResponse struct {
	Products      []*ProductResponse  `json:"products"`
	SearchQuery   string              `json:"search_query"`
	CurrentPage   int                 `json:"current_page"`
	ViewMode      string              `json:"view_mode"`
	ItemsPerPage  int                 `json:"items_per_page"`
	FilteredCount int                 `json:"filtered_count"`
	TotalPages    int                 `json:"total_pages"`
	Showing       PageSummaryResponse `json:"showing"`
	Pages         []PageLinkResponse  `json:"pages"`
}

// ToCatalogViewResponse converts a domain CatalogView to CatalogViewResponse
func ToCatalogViewResponse(v domain.CatalogView) *CatalogViewResponse {
	pages := make([]PageLinkResponse, len(v.Pages))
	for i, l := range v.Pages {
		pages[i] = PageLinkResponse{Page: l.Page, Ellipsis: l.Ellipsis, Current: l.Current}
	}

	return &CatalogViewResponse{
		Products:      ToProductResponseList(v.Items),
		SearchQuery:   v.SearchQuery,
		CurrentPage:   v.CurrentPage,
		ViewMode:      string(v.ViewMode),
		ItemsPerPage:  v.ItemsPerPage,
		FilteredCount: v.FilteredCount,
		TotalPages:    v.TotalPages,
		Showing: PageSummaryResponse{
			Start: v.Summary.Start,
			End:   v.Summary.End,
			Total: v.Summary.Total,
		},
		Pages: pages,
	}
}
