package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newOrdersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders [id]",
		Short: "List your orders or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(args) == 1 {
				order, err := a.client.GetOrder(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Order %s (%s): $%.2f\n", order.ID, order.Status, order.Total)
				for _, item := range order.Items {
					fmt.Printf("  %dx %s ($%.2f)\n", item.Quantity, item.ProductName, item.Price)
				}
				return nil
			}

			orders, err := a.client.GetUserOrders(ctx)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Println("No orders yet.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tTOTAL\tPLACED")
			for _, order := range orders {
				fmt.Fprintf(w, "%s\t%s\t$%.2f\t%s\n",
					order.ID, order.Status, order.Total, order.CreatedAt.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an order that has not shipped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.CancelOrder(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Order cancelled.")
			return nil
		},
	})
	return cmd
}
