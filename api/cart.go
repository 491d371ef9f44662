package api

import (
	"context"
	"net/http"
	"strconv"
)

// ServerProduct is the product snapshot the cart service embeds in each item
type ServerProduct struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	ImageURL string  `json:"image_url"`
}

// ServerCartItem is one line of the server-side cart. Item IDs are numeric on
// the wire; Price is a pointer so a missing price can be told apart from zero.
type ServerCartItem struct {
	ID             int64          `json:"id"`
	ProductID      string         `json:"productId"`
	Quantity       int            `json:"quantity"`
	Price          *float64       `json:"price"`
	ProductDetails *ServerProduct `json:"productDetails"`
}

// ServerCart is the cart as the remote service reports it
type ServerCart struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"userId"`
	CartItems   []ServerCartItem `json:"cartItems"`
	TotalAmount float64          `json:"total_amount"`
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart fetches the authenticated user's server cart
func (c *Client) GetCart(ctx context.Context) (*ServerCart, error) {
	var cart ServerCart
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem adds quantity of a product to the server cart. The server
// merges duplicate product IDs into one line.
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) (*ServerCartItem, error) {
	var item ServerCartItem
	req := addCartItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, "/cart/items", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem sets the quantity of an existing cart line
func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, quantity int) (*ServerCartItem, error) {
	var item ServerCartItem
	req := updateCartItemRequest{Quantity: quantity}
	path := "/cart/items/" + strconv.FormatInt(itemID, 10)
	if err := c.do(ctx, http.MethodPut, path, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem deletes one cart line
func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) error {
	path := "/cart/items/" + strconv.FormatInt(itemID, 10)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ClearCart empties the server cart
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart/clear", nil, nil)
}
