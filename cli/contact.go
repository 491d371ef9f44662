package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-storefront/api"
)

func newContactCmd(a *app) *cobra.Command {
	var name, email, subject, message string
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			submission := api.ContactSubmission{
				Name:    name,
				Email:   email,
				Subject: subject,
				Message: message,
			}
			created, err := a.client.SubmitContactForm(cmd.Context(), submission)
			if err != nil {
				return err
			}
			fmt.Printf("Message sent (ref %s).\n", created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "your name")
	cmd.Flags().StringVar(&email, "email", "", "your email")
	cmd.Flags().StringVar(&subject, "subject", "", "subject line")
	cmd.Flags().StringVar(&message, "message", "", "message body")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("message")
	return cmd
}
