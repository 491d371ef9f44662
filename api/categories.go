package api

import (
	"context"
	"net/http"

	"go-storefront/models"
)

// Category groups catalog products for browsing
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateCategoryRequest is the payload for adding a category
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateCategoryRequest carries the fields to change; empty fields are left
// as they are
type UpdateCategoryRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// GetCategories lists all catalog categories
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryProducts lists the products in one category
func (c *Client) GetCategoryProducts(ctx context.Context, id string) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/categories/"+id+"/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateCategory adds a category. Admin only.
func (c *Client) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	var created Category
	if err := c.do(ctx, http.MethodPost, "/categories", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCategory changes a category's name or description. Admin only.
func (c *Client) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*Category, error) {
	var updated Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+id, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCategory removes a category. Admin only.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+id, nil, nil)
}
