package payment

import (
	"context"

	"go-storefront/api"
)

// RESTGateway drives the payment endpoints of the storefront API
type RESTGateway struct {
	client *api.Client
}

// NewRESTGateway wraps an API client as a Gateway
func NewRESTGateway(client *api.Client) *RESTGateway {
	return &RESTGateway{client: client}
}

// CreateIntent starts a payment for the current cart
func (g *RESTGateway) CreateIntent(ctx context.Context, paymentMethodID string) (Intent, error) {
	resp, err := g.client.ProcessPayment(ctx, paymentMethodID)
	if err != nil {
		return Intent{}, err
	}
	return Intent{ClientSecret: resp.ClientSecret, Status: resp.Status}, nil
}

// ConfirmIntent completes the follow-up authentication step
func (g *RESTGateway) ConfirmIntent(ctx context.Context, clientSecret string) (Intent, error) {
	resp, err := g.client.ConfirmPayment(ctx, clientSecret)
	if err != nil {
		return Intent{}, err
	}
	return Intent{ClientSecret: resp.ClientSecret, Status: resp.Status}, nil
}
