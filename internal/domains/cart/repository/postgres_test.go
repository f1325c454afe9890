package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddItemQueryIsAtomicUpsert(t *testing.T) {
	// A read-modify-write add would lose increments under concurrency;
	// the statement must be a single upsert that increments in place.
	assert.Contains(t, addItemQuery, "ON CONFLICT (user_id, product_id)")
	assert.Contains(t, addItemQuery, "quantity = cart_items.quantity + EXCLUDED.quantity")
	assert.NotContains(t, strings.ToUpper(addItemQuery), "DO NOTHING")
}

func TestAddItemQuerySourcesPriceFromProducts(t *testing.T) {
	// The insert selects from products: a missing product yields zero
	// rows instead of a constraint error, and the captured unit price
	// is the catalog price at add time rather than a caller value.
	assert.Contains(t, addItemQuery, "FROM products p")
	assert.Contains(t, addItemQuery, "WHERE p.id = $2")
	assert.Contains(t, addItemQuery, "p.price")
}
