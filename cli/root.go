// Package cli is the command-line storefront: a thin caller over the cart
// repository and the API client, standing where the web pages stood in the
// original application.
package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"go-storefront/api"
	"go-storefront/auth"
	"go-storefront/cart"
	"go-storefront/config"
	"go-storefront/localstore"
	"go-storefront/models"
)

// app holds the wired-up client graph shared by every command
type app struct {
	cfg     *config.Config
	store   localstore.Store
	session *auth.Session
	client  *api.Client
	repo    *cart.Repository
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the storefront command tree
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront client: browse products, manage your cart, place orders",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context())
		},
	}

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newProductsCmd(a),
		newCategoriesCmd(a),
		newReviewsCmd(a),
		newCartCmd(a),
		newCheckoutCmd(a),
		newOrdersCmd(a),
		newContactCmd(a),
		newAdminCmd(a),
	)
	return root
}

func (a *app) init(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.RedisAddr != "" {
		store, err := localstore.NewRedisStore(cfg.RedisAddr, "storefront")
		if err != nil {
			return err
		}
		a.store = store
	} else {
		store, err := localstore.NewFileStore(cfg.StoreDir)
		if err != nil {
			return err
		}
		a.store = store
	}

	a.session = auth.NewSession(ctx, a.store)
	a.client = api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, a.session)
	a.repo = cart.NewRepository(a.session, a.client, a.store)
	return nil
}

// printCart renders a cart as a table followed by the total
func printCart(c models.Cart) {
	if c.IsEmpty() {
		fmt.Println("Your cart is empty.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY\tLINE TOTAL")
	for _, item := range c.Items {
		fmt.Fprintf(w, "%s\t%s\t$%.2f\t%d\t$%.2f\n",
			item.ID, item.Name, item.Price, item.Quantity, item.LineTotal())
	}
	w.Flush()
	fmt.Printf("Total: $%.2f\n", c.Total)
}
