package api

import (
	"context"
	"net/http"
	"time"
)

// Review is one shopper's review of a product
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateReviewRequest is the payload for posting a review
type CreateReviewRequest struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// UpdateReviewRequest carries the fields to change; a zero rating or empty
// comment is left as it is
type UpdateReviewRequest struct {
	Rating  int    `json:"rating,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// GetProductReviews lists the reviews posted for one product
func (c *Client) GetProductReviews(ctx context.Context, productID string) ([]Review, error) {
	var reviews []Review
	if err := c.do(ctx, http.MethodGet, "/reviews/product/"+productID, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetUserReviews lists the authenticated user's own reviews
func (c *Client) GetUserReviews(ctx context.Context) ([]Review, error) {
	var reviews []Review
	if err := c.do(ctx, http.MethodGet, "/reviews/user", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview posts a review for a product
func (c *Client) CreateReview(ctx context.Context, req CreateReviewRequest) (*Review, error) {
	var created Review
	if err := c.do(ctx, http.MethodPost, "/reviews", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateReview changes the rating or comment of an existing review
func (c *Client) UpdateReview(ctx context.Context, id string, req UpdateReviewRequest) (*Review, error) {
	var updated Review
	if err := c.do(ctx, http.MethodPut, "/reviews/"+id, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteReview removes a review
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reviews/"+id, nil, nil)
}
