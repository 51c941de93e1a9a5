package domain

// CartLine is a single product entry in a cart. Name, price, and image are
// snapshotted from the catalog at the time the product is added.
type CartLine struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Image      string `json:"image,omitempty"`
	Quantity   int    `json:"quantity"`
}

// Cart maps product IDs to their lines.
type Cart map[string]CartLine

// ItemCount returns the total quantity across all lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, line := range c {
		count += line.Quantity
	}
	return count
}

// TotalCents returns the cart total in cents.
func (c Cart) TotalCents() int64 {
	var total int64
	for _, line := range c {
		total += line.PriceCents * int64(line.Quantity)
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}
