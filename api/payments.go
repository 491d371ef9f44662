package api

import (
	"context"
	"net/http"
)

// PaymentIntentResponse is the gateway's answer to a payment request.
// Status is "succeeded", "requires_action", or a terminal failure status;
// ClientSecret is set when a follow-up confirmation is required.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	Status       string `json:"status"`
}

type processPaymentRequest struct {
	PaymentMethodID string `json:"paymentMethodId"`
}

type confirmPaymentRequest struct {
	ClientSecret string `json:"clientSecret"`
}

// ProcessPayment starts a payment for the current cart with the given
// payment-method token
func (c *Client) ProcessPayment(ctx context.Context, paymentMethodID string) (*PaymentIntentResponse, error) {
	var resp PaymentIntentResponse
	req := processPaymentRequest{PaymentMethodID: paymentMethodID}
	if err := c.do(ctx, http.MethodPost, "/cart/payment", req, &resp); err != nil {
		return nil, err
	}
	if resp.Status == "" {
		return nil, &MalformedResponseError{Reason: "payment response has no status"}
	}
	return &resp, nil
}

// ConfirmPayment completes the follow-up authentication step of a payment
// that came back as requires_action
func (c *Client) ConfirmPayment(ctx context.Context, clientSecret string) (*PaymentIntentResponse, error) {
	var resp PaymentIntentResponse
	req := confirmPaymentRequest{ClientSecret: clientSecret}
	if err := c.do(ctx, http.MethodPost, "/cart/payment/confirm", req, &resp); err != nil {
		return nil, err
	}
	if resp.Status == "" {
		return nil, &MalformedResponseError{Reason: "payment confirmation has no status"}
	}
	return &resp, nil
}
