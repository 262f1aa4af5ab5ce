package cart

import "github.com/shopspring/decimal"

// Group is one side of a partitioned cart: the lines plus their precomputed
// subtotal and fragile flag.
type Group struct {
	Items      []Item          `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	HasFragile bool            `json:"has_fragile"`
}

// SplitCart is the read-only result of partitioning a cart into
// instant-fulfillment and scheduled-fulfillment groups. Every source line
// appears in exactly one group; the groups are disjoint and order-preserving.
type SplitCart struct {
	Instant  Group `json:"instant"`
	Preorder Group `json:"preorder"`
}

// ParsePrice parses a product's decimal price string. A malformed or
// non-numeric price yields zero and ok=false rather than an error; the
// caller is expected to log the condition as a data-integrity warning,
// not abort over it.
func ParsePrice(price string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// LineTotal returns price x quantity for a single line, with a malformed
// price contributing zero.
func LineTotal(item Item) decimal.Decimal {
	price, _ := ParsePrice(item.Product.Price)
	return price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Split partitions items into instant and pre-order groups in a single
// pass without mutating the input. Relative order within each group matches
// the source order. Subtotals are rounded to 2 decimal places at the cent
// boundary (half away from zero).
func Split(items []Item) SplitCart {
	// Empty partitions keep an empty slice so they serialize as [] rather
	// than null.
	split := SplitCart{
		Instant:  Group{Items: []Item{}},
		Preorder: Group{Items: []Item{}},
	}
	instantSum, preorderSum := decimal.Zero, decimal.Zero

	for _, item := range items {
		if item.IsPreorder {
			split.Preorder.Items = append(split.Preorder.Items, item)
			preorderSum = preorderSum.Add(LineTotal(item))
			if item.IsFragile {
				split.Preorder.HasFragile = true
			}
		} else {
			split.Instant.Items = append(split.Instant.Items, item)
			instantSum = instantSum.Add(LineTotal(item))
			if item.IsFragile {
				split.Instant.HasFragile = true
			}
		}
	}

	split.Instant.Subtotal = instantSum.Round(2)
	split.Preorder.Subtotal = preorderSum.Round(2)
	return split
}

// HasMixedAvailability reports whether items contain at least one instant
// line and at least one pre-order line. Carts with fewer than two lines can
// never be mixed. A mixed cart forces checkout into the two-batch split flow.
func HasMixedAvailability(items []Item) bool {
	if len(items) < 2 {
		return false
	}
	first := items[0].IsPreorder
	for _, item := range items[1:] {
		if item.IsPreorder != first {
			return true
		}
	}
	return false
}
