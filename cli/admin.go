package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go-storefront/models"
)

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Store administration (requires an admin account)",
	}
	cmd.AddCommand(
		newAdminOrdersCmd(a),
		newAdminProductsCmd(a),
	)
	return cmd
}

func newAdminOrdersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List every order in the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := a.client.GetAllOrders(cmd.Context())
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Println("No orders.")
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
		Use:   "status <id> <status>",
		Short: "Set an order's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := a.client.UpdateOrderStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Order %s is now %s.\n", order.ID, order.Status)
			return nil
		},
	})
	return cmd
}

func newAdminProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage the catalog",
	}

	var name, description, category, image string
	var price float64
	var stock int

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a catalog product",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := a.client.CreateProduct(cmd.Context(), models.Product{
				Name:        name,
				Description: description,
				Price:       price,
				Stock:       stock,
				Category:    category,
				ImageURL:    image,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Product %s created.\n", created.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "product name")
	add.Flags().StringVar(&description, "description", "", "product description")
	add.Flags().Float64Var(&price, "price", 0, "unit price")
	add.Flags().IntVar(&stock, "stock", 0, "units in stock")
	add.Flags().StringVar(&category, "category", "", "category id")
	add.Flags().StringVar(&image, "image", "", "image URL")
	add.MarkFlagRequired("name")
	add.MarkFlagRequired("price")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a catalog product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := a.client.UpdateProduct(cmd.Context(), args[0], models.Product{
				Name:        name,
				Description: description,
				Price:       price,
				Stock:       stock,
				Category:    category,
				ImageURL:    image,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Product %s updated.\n", updated.ID)
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "product name")
	update.Flags().StringVar(&description, "description", "", "product description")
	update.Flags().Float64Var(&price, "price", 0, "unit price")
	update.Flags().IntVar(&stock, "stock", 0, "units in stock")
	update.Flags().StringVar(&category, "category", "", "category id")
	update.Flags().StringVar(&image, "image", "", "image URL")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a catalog product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Product deleted.")
			return nil
		},
	}

	cmd.AddCommand(add, update, remove)
	return cmd
}
