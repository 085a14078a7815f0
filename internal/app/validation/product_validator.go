package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mrops-br/catalog-api/internal/domain"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

// ProductForm is a product payload as submitted by a form: price and stock
// arrive as text and still need coercing to numbers.
type ProductForm struct {
	Name        string
	Price       string
	Category    string
	Stock       string
	Description *string
}

// FieldError describes one problem with one form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects every field problem found in a form
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "invalid product: " + strings.Join(parts, "; ")
}

// Has reports whether field has at least one error
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Fields groups the messages by field name
func (e Errors) Fields() map[string][]string {
	out := make(map[string][]string, len(e))
	for _, fe := range e {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// productRules are the constraints checked once price and stock are numbers.
type productRules struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Price       float64 `json:"price" validate:"gt=0"`
	Category    string  `json:"category" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Description string  `json:"description" validate:"max=500"`
}

var messages = map[string]string{
	"name.required":     "Name is required",
	"name.max":          fmt.Sprintf("Name must be less than %d characters", MaxNameLength),
	"price.gt":          "Price must be greater than 0",
	"category.required": "Category is required",
	"stock.gte":         "Stock cannot be negative",
	"description.max":   fmt.Sprintf("Description must be less than %d characters", MaxDescriptionLength),
}

// ProductValidator checks product forms before they reach the store. It is
// stateless and safe for concurrent use.
type ProductValidator struct {
	validate *validator.Validate
}

// NewProductValidator creates a new product validator
func NewProductValidator() *ProductValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &ProductValidator{validate: v}
}

// Validate coerces and checks every field of form. It returns the normalized
// product data, or Errors listing all offending fields at once.
func (pv *ProductValidator) Validate(form ProductForm) (domain.ProductData, error) {
	var errs Errors
	var skip []string

	price, err := coerceNumber(form.Price)
	if err != nil {
		errs = append(errs, FieldError{Field: "price", Message: "Price must be a number"})
		skip = append(skip, "Price")
	}

	stock, stockErrs := coerceStock(form.Stock)
	if len(stockErrs) > 0 {
		errs = append(errs, stockErrs...)
		skip = append(skip, "Stock")
	}

	rules := productRules{
		Name:     form.Name,
		Price:    price,
		Category: form.Category,
		Stock:    stock,
	}
	if form.Description != nil {
		rules.Description = *form.Description
	}

	if err := pv.validate.StructExcept(rules, skip...); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return domain.ProductData{}, err
		}
		for _, fe := range verrs {
			errs = append(errs, FieldError{Field: fe.Field(), Message: message(fe)})
		}
	}

	if len(errs) > 0 {
		return domain.ProductData{}, errs
	}

	return domain.ProductData{
		Name:        rules.Name,
		Price:       rules.Price,
		Category:    rules.Category,
		Stock:       rules.Stock,
		Description: rules.Description,
	}, nil
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("Validation failed on %s", fe.Tag())
}

// coerceNumber turns form text into a finite number. Blank text counts as 0.
func coerceNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// coerceStock checks the rules that need the raw number: a stock must be a
// whole number. The sign is left to the struct rules unless the value is
// fractional, in which case both problems are reported here.
func coerceStock(raw string) (int, Errors) {
	v, err := coerceNumber(raw)
	if err != nil {
		return 0, Errors{{Field: "stock", Message: "Stock must be a number"}}
	}
	if v != math.Trunc(v) {
		var errs Errors
		if v < 0 {
			errs = append(errs, FieldError{Field: "stock", Message: messages["stock.gte"]})
		}
		return 0, append(errs, FieldError{Field: "stock", Message: "Stock must be a whole number"})
	}
	if v > math.MaxInt32 {
		return 0, Errors{{Field: "stock", Message: "Stock is too large"}}
	}
	return int(v), nil
}
