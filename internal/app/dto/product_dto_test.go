package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mrops-br/catalog-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRequestAcceptsNumbersAndStrings(t *testing.T) {
	tests := []struct {
		body      string
		wantPrice string
		wantStock string
	}{
		{`{"price": 9.99, "stock": 5}`, "9.99", "5"},
		{`{"price": "9.99", "stock": "5"}`, "9.99", "5"},
		{`{"price": null}`, "", ""},
		{`{"price": 1e2, "stock": 1.5}`, "1e2", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req ProductRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			form := req.ToForm()
			assert.Equal(t, tt.wantPrice, form.Price)
			assert.Equal(t, tt.wantStock, form.Stock)
		})
	}
}

func TestProductRequestRejectsOtherTypes(t *testing.T) {
	var req ProductRequest
	err := json.Unmarshal([]byte(`{"price": true}`), &req)
	assert.Error(t, err)
}

func TestProductRequestDescriptionPresence(t *testing.T) {
	var absent, empty ProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"description":""}`), &empty))

	assert.Nil(t, absent.ToForm().Description)
	require.NotNil(t, empty.ToForm().Description)
	assert.Equal(t, "", *empty.ToForm().Description)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "9.99", FormatPrice(9.99))
	assert.Equal(t, "10.00", FormatPrice(10))
	assert.Equal(t, "12.35", FormatPrice(12.345))
	assert.Equal(t, "0.10", FormatPrice(0.1))
}

func TestToProductResponse(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	resp := ToProductResponse(domain.Product{
		ID: "prod-1", Name: "Widget", Price: 12.345, Category: "Toys", Stock: 3, CreatedAt: created,
	})

	assert.Equal(t, 12.345, resp.Price)
	assert.Equal(t, "12.35", resp.PriceDisplay)
	assert.Equal(t, "low", resp.StockStatus)
	assert.Equal(t, created, resp.CreatedAt)
}

func TestToCatalogViewResponse(t *testing.T) {
	view := domain.BuildCatalogView(
		[]domain.Product{{ID: "a", Name: "Widget"}},
		domain.ViewState{CurrentPage: 1, ViewMode: domain.ViewModeList, ItemsPerPage: domain.ItemsPerPage},
	)

	resp := ToCatalogViewResponse(view)

	require.Len(t, resp.Products, 1)
	assert.Equal(t, "list", resp.ViewMode)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, PageSummaryResponse{Start: 1, End: 1, Total: 1}, resp.Showing)
	assert.Equal(t, []PageLinkResponse{{Page: 1, Current: true}}, resp.Pages)
}
