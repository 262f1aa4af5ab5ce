package cart_test

import (
	"encoding/json"
	"testing"

	"manis/internal/cart"
	"manis/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	c := cart.New()
	c.AddItem(models.Product{ID: "prod-1", Name: "Brownie Box", Price: "45.00"}, 2, "", false)
	c.AddItem(models.Product{ID: "prod-2", Name: "Rose Bouquet", Price: "120.00", IsFragile: true}, 1, "Happy Anniversary", true)

	data, err := cart.Encode(c)
	assert.NoError(t, err)

	restored, err := cart.Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, c.Items, restored.Items)
}

func TestSnapshot_MigratesLegacyRecordsWithoutIdentity(t *testing.T) {
	// A version 1 snapshot predates the identity field.
	legacy := map[string]interface{}{
		"version": 1,
		"items": []map[string]interface{}{
			{
				"product":        map[string]interface{}{"id": "prod-1", "name": "Cheese Tart", "price": "30.00"},
				"quantity":       2,
				"custom_message": " Happy Birthday ",
			},
			{
				"product":        map[string]interface{}{"id": "prod-1", "name": "Cheese Tart", "price": "30.00"},
				"quantity":       1,
				"custom_message": "happy birthday",
			},
			{
				"product":  map[string]interface{}{"id": "prod-2", "name": "Tulip Bunch", "price": "80.00"},
				"quantity": 1,
			},
		},
	}
	data, err := json.Marshal(legacy)
	assert.NoError(t, err)

	restored, err := cart.Decode(data)
	assert.NoError(t, err)

	// The two message variants collapse onto one identity with summed quantity.
	assert.Len(t, restored.Items, 2)
	assert.Equal(t, cart.ItemIdentity("prod-1", "happy birthday"), restored.Items[0].Identity)
	assert.Equal(t, 3, restored.Items[0].Quantity)
	assert.Equal(t, cart.ItemIdentity("prod-2", ""), restored.Items[1].Identity)
}

func TestSnapshot_RejectsFutureVersion(t *testing.T) {
	data, err := json.Marshal(map[string]interface{}{"version": 99, "items": []interface{}{}})
	assert.NoError(t, err)

	_, err = cart.Decode(data)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")
}

func TestSnapshot_RejectsMalformedPayload(t *testing.T) {
	_, err := cart.Decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestSnapshot_EmptyCartRoundTrip(t *testing.T) {
	data, err := cart.Encode(cart.New())
	assert.NoError(t, err)

	restored, err := cart.Decode(data)
	assert.NoError(t, err)
	assert.True(t, restored.IsEmpty())
}
