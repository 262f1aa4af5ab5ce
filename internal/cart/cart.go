package cart

import (
	"strings"

	"manis/internal/models"
)

// NormalizeMessage canonicalizes a custom message for identity purposes:
// trim surrounding whitespace and lowercase. An absent message normalizes
// to the empty string.
func NormalizeMessage(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

// ItemIdentity derives the composite key that makes a cart line unique:
// the same product with different custom messages yields distinct lines,
// while message variants that normalize equally merge into one.
func ItemIdentity(productID, customMessage string) string {
	return productID + "::" + NormalizeMessage(customMessage)
}

// Item is a single cart line: N units of a product, with an optional custom
// message, queued either for immediate or scheduled fulfillment.
//
// Product is an immutable snapshot captured at add-to-cart time; price
// changes after adding must not retroactively change this line's price.
// IsFragile and IsPreorder are denormalized at add time so downstream fee
// and partition logic never re-touches the catalog.
type Item struct {
	Identity      string         `json:"identity"`
	Product       models.Product `json:"product"`
	Quantity      int            `json:"quantity"`
	CustomMessage string         `json:"custom_message,omitempty"`
	IsFragile     bool           `json:"is_fragile"`
	IsPreorder    bool           `json:"is_preorder"`
}

// Cart is the authoritative in-session list of line items. It is owned by a
// single customer session, mutated synchronously, and never shared across
// goroutines, so it carries no locking.
//
// Invariant: at most one Item exists per identity at any time. Duplicate
// adds merge by incrementing quantity, never by duplicating lines.
type Cart struct {
	Items []Item `json:"items"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem adds quantity units of product with the given custom message.
// If a line with the same identity already exists its quantity is
// incremented; no other field of the existing line changes (in particular
// IsPreorder and IsFragile are not overwritten). Otherwise a new line is
// appended with IsFragile copied from the product snapshot and IsPreorder
// set from the argument. A non-positive quantity on a new line is clamped
// to 1.
func (c *Cart) AddItem(product models.Product, quantity int, customMessage string, isPreorder bool) {
	identity := ItemIdentity(product.ID, customMessage)

	for i := range c.Items {
		if c.Items[i].Identity == identity {
			c.Items[i].Quantity += quantity
			return
		}
	}

	if quantity < 1 {
		quantity = 1
	}

	c.Items = append(c.Items, Item{
		Identity:      identity,
		Product:       product,
		Quantity:      quantity,
		CustomMessage: customMessage,
		IsFragile:     product.IsFragile,
		IsPreorder:    isPreorder,
	})
}

// RemoveItem deletes the line with the given identity. No-op if absent.
func (c *Cart) RemoveItem(identity string) {
	for i := range c.Items {
		if c.Items[i].Identity == identity {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity overwrites the quantity of the line with the given
// identity. A quantity <= 0 is equivalent to RemoveItem. No merging
// happens; the call is idempotent.
func (c *Cart) UpdateQuantity(identity string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(identity)
		return
	}
	for i := range c.Items {
		if c.Items[i].Identity == identity {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// RemoveAllByProduct deletes every line (across all message variants)
// whose snapshot's product id matches.
func (c *Cart) RemoveAllByProduct(productID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// Clear empties the cart. Called after a successful order submission.
func (c *Cart) Clear() {
	c.Items = nil
}

// Find returns the line with the given identity, or nil if absent.
func (c *Cart) Find(identity string) *Item {
	for i := range c.Items {
		if c.Items[i].Identity == identity {
			return &c.Items[i]
		}
	}
	return nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
