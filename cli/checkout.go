package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go-storefront/cart"
)

func newCheckoutCmd(a *app) *cobra.Command {
	var address, paymentMethodID string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Pay for the cart and place the order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := a.repo.GetCart(ctx)
			if err != nil {
				return err
			}
			// Order preconditions are checked before any payment runs
			if c.IsEmpty() {
				return fmt.Errorf("your cart is empty")
			}
			if strings.TrimSpace(address) == "" {
				return fmt.Errorf("shipping address is required")
			}

			if paymentMethodID != "" {
				intent, err := a.repo.Pay(ctx, paymentMethodID)
				if err != nil {
					return err
				}
				if !intent.Succeeded() {
					return fmt.Errorf("payment did not complete: status %q", intent.Status)
				}
				fmt.Println("Payment successful.")
			}

			orderID, err := a.repo.PlaceOrder(ctx, address, c)
			if err != nil {
				var clearErr *cart.ClearFailedError
				if errors.As(err, &clearErr) {
					// The order stands even though the cart is stale
					fmt.Printf("Order %s placed.\n", clearErr.OrderID)
					fmt.Println("Warning: the cart could not be cleared and may still show the ordered items.")
					return nil
				}
				return err
			}
			fmt.Printf("Order %s placed.\n", orderID)
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "shipping address")
	cmd.Flags().StringVar(&paymentMethodID, "pay", "", "payment method id; when set, payment runs before the order is placed")
	cmd.MarkFlagRequired("address")
	return cmd
}
