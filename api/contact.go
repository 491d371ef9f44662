package api

import (
	"context"
	"net/http"
)

// ContactSubmission is a message sent through the contact form
type ContactSubmission struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

// SubmitContactForm sends a contact message to the storefront
func (c *Client) SubmitContactForm(ctx context.Context, submission ContactSubmission) (*ContactSubmission, error) {
	var created ContactSubmission
	if err := c.do(ctx, http.MethodPost, "/contact", submission, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
