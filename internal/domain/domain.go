package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Catalog identifies one of the three fixed reference tables an order
// chooses from. It is a closed set: the store dispatches on the variant
// to a fixed query, the catalog name never gets interpolated into SQL.
type Catalog int

const (
	CatalogSize Catalog = iota
	CatalogSauce
	CatalogTopping
)

func (c Catalog) String() string {
	switch c {
	case CatalogSize:
		return "size"
	case CatalogSauce:
		return "sauce"
	case CatalogTopping:
		return "topping"
	default:
		return fmt.Sprintf("catalog(%d)", int(c))
	}
}

// Order is the view of a persisted order: its generated id and the
// display names of its size, sauce and toppings. Toppings carry set
// semantics, their order in the slice is not meaningful.
type Order struct {
	ID       int64    `json:"order_id"`
	Size     string   `json:"size"`
	Sauce    string   `json:"sauce"`
	Toppings []string `json:"toppings"`
}

// CreateOrderRequest is the body of POST /. All three fields are
// required and toppings must contain at least one name.
type CreateOrderRequest struct {
	Size     string   `json:"size" validate:"required"`
	Sauce    string   `json:"sauce" validate:"required"`
	Toppings []string `json:"toppings" validate:"required,min=1,dive,required"`
}

// UpdateOrderRequest is the body of PUT /:id. Fields left out of the
// JSON stay untouched; a nil Toppings slice means "not supplied",
// which is distinct from an (invalid) empty one.
type UpdateOrderRequest struct {
	Size     string   `json:"size"`
	Sauce    string   `json:"sauce"`
	Toppings []string `json:"toppings"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field names as they appear on the wire, not as Go identifiers.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the request shape using the struct's validation tags.
// A shape failure comes back as a MalformedError naming every absent
// field; internal validator errors are wrapped and returned as-is.
func (r *CreateOrderRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("internal validator error: %w", err)
		}
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
		return &MalformedError{Missing: missing}
	}
	return nil
}

// Validate checks that the update supplies at least one field and that
// toppings, when supplied, are non-empty.
func (r *UpdateOrderRequest) Validate() error {
	if r.Size == "" && r.Sauce == "" && r.Toppings == nil {
		return &MalformedError{Missing: []string{"size", "sauce", "toppings"}}
	}
	if r.Toppings != nil && len(r.Toppings) == 0 {
		return &MalformedError{Missing: []string{"toppings"}}
	}
	return nil
}
