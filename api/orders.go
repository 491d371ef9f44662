package api

import (
	"context"
	"net/http"

	"go-storefront/models"
)

// CreateOrderRequest is the payload for placing an order: cart line
// snapshots plus the shipping address.
type CreateOrderRequest struct {
	Items           []models.OrderItem `json:"items"`
	ShippingAddress string             `json:"shippingAddress"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// CreateOrder places an order for the authenticated user
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders/create", req, &order); err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, &MalformedResponseError{Reason: "created order has no id"}
	}
	return &order, nil
}

// GetUserOrders lists the authenticated user's orders
func (c *Client) GetUserOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/user", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches one order by ID
func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels an order that has not shipped yet
func (c *Client) CancelOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/orders/"+id+"/cancel", nil, nil)
}

// GetAllOrders lists every order. Admin only.
func (c *Client) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets an order's status. Admin only.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	var order models.Order
	req := updateOrderStatusRequest{Status: status}
	if err := c.do(ctx, http.MethodPut, "/orders/"+id+"/status", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
