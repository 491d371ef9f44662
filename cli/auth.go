package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-storefront/cart"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password, merge string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and reconcile the local cart with the server cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resp, err := a.client.Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := a.session.SetToken(ctx, resp.Token); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s.\n", email)

			switch merge {
			case "discard":
				a.repo.SetMergePolicy(cart.MergeDiscard)
			case "additive":
				a.repo.SetMergePolicy(cart.MergeAdditive)
			default:
				return fmt.Errorf("unknown merge policy %q (want additive or discard)", merge)
			}
			c, err := a.repo.Reconcile(ctx)
			if err != nil {
				return err
			}
			printCart(c)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&merge, "merge", "additive", "what to do with the local cart: additive or discard")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			resp, err := a.client.Register(ctx, name, email, password)
			if err != nil {
				return err
			}
			if err := a.session.SetToken(ctx, resp.Token); err != nil {
				return err
			}
			fmt.Printf("Registered and logged in as %s.\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
