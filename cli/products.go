package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go-storefront/models"
)

func newProductsCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "products [id]",
		Short: "Browse the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(args) == 1 {
				p, err := a.client.GetProduct(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%s\n%s\n$%.2f, %d in stock\n", p.Name, p.Description, p.Price, p.Stock)
				return nil
			}

			var products []models.Product
			var err error
			if category != "" {
				products, err = a.client.GetCategoryProducts(ctx, category)
			} else {
				products, err = a.client.GetProducts(ctx)
			}
			if err != nil {
				return err
			}
			return printProducts(products)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list products in this category")
	return cmd
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the catalog categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := a.client.GetCategories(cmd.Context())
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				fmt.Println("No categories.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			for _, c := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Description)
			}
			return w.Flush()
		},
	}
}

func printProducts(products []models.Product) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t$%.2f\t%d\n", p.ID, p.Name, p.Price, p.Stock)
	}
	return w.Flush()
}
