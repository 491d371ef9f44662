package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and modify your shopping cart",
	}
	cmd.AddCommand(
		newCartShowCmd(a),
		newCartAddCmd(a),
		newCartUpdateCmd(a),
		newCartRemoveCmd(a),
		newCartClearCmd(a),
	)
	return cmd
}

func newCartShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the current cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.repo.GetCart(cmd.Context())
			if err != nil {
				return err
			}
			printCart(c)
			return nil
		},
	}
}

func newCartAddCmd(a *app) *cobra.Command {
	var quantity int
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.repo.AddItem(cmd.Context(), args[0], quantity)
			if err != nil {
				return err
			}
			fmt.Println("Item added to cart.")
			printCart(c)
			return nil
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity to add")
	return cmd
}

func newCartUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <item-id> <quantity>",
		Short: "Set the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a number: %q", args[1])
			}
			c, err := a.repo.UpdateQuantity(cmd.Context(), args[0], quantity)
			if err != nil {
				return err
			}
			if quantity < 1 {
				fmt.Println("Quantities below 1 are ignored; use 'cart remove' to drop a line.")
			}
			printCart(c)
			return nil
		},
	}
}

func newCartRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.repo.RemoveItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printCart(c)
			return nil
		},
	}
}

func newCartClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.repo.ClearCart(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println("Cart cleared.")
			return nil
		},
	}
}
