// Package payment models the payment gateway as an external actor with a
// two-phase protocol: create an intent, then confirm it while the gateway
// keeps asking for a follow-up authentication step. The cart module only
// cares about the three statuses, not the gateway's internals.
package payment

import (
	"context"

	"github.com/pkg/errors"
)

// Intent statuses. Anything other than these two is a terminal failure.
const (
	StatusSucceeded      = "succeeded"
	StatusRequiresAction = "requires_action"
)

// maxConfirmAttempts bounds the confirm loop so a gateway that keeps
// answering requires_action cannot spin forever
const maxConfirmAttempts = 3

// Intent is the gateway's view of one payment attempt
type Intent struct {
	ClientSecret string
	Status       string
}

// Succeeded reports whether the intent reached the terminal success state
func (i Intent) Succeeded() bool {
	return i.Status == StatusSucceeded
}

// Gateway is the two-phase payment protocol
type Gateway interface {
	CreateIntent(ctx context.Context, paymentMethodID string) (Intent, error)
	ConfirmIntent(ctx context.Context, clientSecret string) (Intent, error)
}

// Settle runs a payment to a terminal status: create the intent, then
// confirm as long as the gateway answers requires_action. The returned
// intent's status is what the caller should act on; a non-succeeded terminal
// status is not an error here, it is an answer.
func Settle(ctx context.Context, gw Gateway, paymentMethodID string) (Intent, error) {
	intent, err := gw.CreateIntent(ctx, paymentMethodID)
	if err != nil {
		return Intent{}, errors.Wrap(err, "creating payment intent")
	}

	for attempt := 0; intent.Status == StatusRequiresAction; attempt++ {
		if attempt >= maxConfirmAttempts {
			return intent, errors.Errorf("payment still requires action after %d confirmation attempts", maxConfirmAttempts)
		}
		if intent.ClientSecret == "" {
			return intent, errors.New("gateway requested confirmation without a client secret")
		}
		intent, err = gw.ConfirmIntent(ctx, intent.ClientSecret)
		if err != nil {
			return Intent{}, errors.Wrap(err, "confirming payment intent")
		}
	}
	return intent, nil
}
