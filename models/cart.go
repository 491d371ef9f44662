package models

// CartItem represents a single purchasable line in a shopper's cart. ID is
// the line's identity within the cart: the product ID for locally-kept carts,
// the server's line ID (rendered as a string) for server carts. ProductID
// always names the product, whichever backend the line came from.
type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// ProductRef returns the product this line is for, falling back to the line
// ID for records written before ProductID existed
func (ci CartItem) ProductRef() string {
	if ci.ProductID != "" {
		return ci.ProductID
	}
	return ci.ID
}

// LineTotal returns price times quantity for this line
func (ci CartItem) LineTotal() float64 {
	return ci.Price * float64(ci.Quantity)
}

// Cart represents a shopper's cart. Items keep insertion order and hold at
// most one line per item ID; Total is derived from Items and must be
// recalculated after every mutation.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// EmptyCart returns a new cart with no items and a zero total
func EmptyCart() Cart {
	return Cart{Items: []CartItem{}, Total: 0}
}

// RecalculateTotal recomputes Total from the current items
func (c *Cart) RecalculateTotal() {
	total := 0.0
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	c.Total = total
}

// Find returns the index of the item with the given ID, or -1
func (c *Cart) Find(itemID string) int {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
