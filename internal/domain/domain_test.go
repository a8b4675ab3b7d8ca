package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateOrderRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := &CreateOrderRequest{
			Size:     "Large",
			Sauce:    "Tomato",
			Toppings: []string{"Cheese"},
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing size", func(t *testing.T) {
		req := &CreateOrderRequest{
			Sauce:    "Tomato",
			Toppings: []string{"Cheese"},
		}
		err := req.Validate()

		var malformed *MalformedError
		assert.ErrorAs(t, err, &malformed)
		assert.Equal(t, []string{"size"}, malformed.Missing)
	})

	t.Run("missing everything", func(t *testing.T) {
		req := &CreateOrderRequest{}
		err := req.Validate()

		var malformed *MalformedError
		assert.ErrorAs(t, err, &malformed)
		assert.ElementsMatch(t, []string{"size", "sauce", "toppings"}, malformed.Missing)
	})

	t.Run("empty toppings list", func(t *testing.T) {
		req := &CreateOrderRequest{
			Size:     "Large",
			Sauce:    "Tomato",
			Toppings: []string{},
		}
		err := req.Validate()

		var malformed *MalformedError
		assert.ErrorAs(t, err, &malformed)
		assert.Contains(t, malformed.Missing, "toppings")
	})
}

func TestUpdateOrderRequest_Validate(t *testing.T) {
	t.Run("single field is enough", func(t *testing.T) {
		assert.NoError(t, (&UpdateOrderRequest{Sauce: "BBQ"}).Validate())
		assert.NoError(t, (&UpdateOrderRequest{Size: "Small"}).Validate())
		assert.NoError(t, (&UpdateOrderRequest{Toppings: []string{"Bacon"}}).Validate())
	})

	t.Run("no fields", func(t *testing.T) {
		err := (&UpdateOrderRequest{}).Validate()

		var malformed *MalformedError
		assert.ErrorAs(t, err, &malformed)
	})

	t.Run("toppings supplied but empty", func(t *testing.T) {
		err := (&UpdateOrderRequest{Toppings: []string{}}).Validate()

		var malformed *MalformedError
		assert.ErrorAs(t, err, &malformed)
		assert.Equal(t, []string{"toppings"}, malformed.Missing)
	})
}

func TestCatalog_String(t *testing.T) {
	assert.Equal(t, "size", CatalogSize.String())
	assert.Equal(t, "sauce", CatalogSauce.String())
	assert.Equal(t, "topping", CatalogTopping.String())
}
