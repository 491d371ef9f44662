package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go-storefront/api"
)

func newReviewsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Read and write product reviews",
	}
	cmd.AddCommand(
		newReviewsListCmd(a),
		newReviewsMineCmd(a),
		newReviewsAddCmd(a),
		newReviewsDeleteCmd(a),
	)
	return cmd
}

func newReviewsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <product-id>",
		Short: "Show the reviews for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reviews, err := a.client.GetProductReviews(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(reviews) == 0 {
				fmt.Println("No reviews yet.")
				return nil
			}
			return printReviews(reviews)
		},
	}
}

func newReviewsMineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Show the reviews you have posted",
		RunE: func(cmd *cobra.Command, args []string) error {
			reviews, err := a.client.GetUserReviews(cmd.Context())
			if err != nil {
				return err
			}
			if len(reviews) == 0 {
				fmt.Println("You have not posted any reviews.")
				return nil
			}
			return printReviews(reviews)
		},
	}
}

func newReviewsAddCmd(a *app) *cobra.Command {
	var rating int
	var comment string
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Post a review for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := a.client.CreateReview(cmd.Context(), api.CreateReviewRequest{
				ProductID: args[0],
				Rating:    rating,
				Comment:   comment,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Review %s posted.\n", created.ID)
			return nil
		},
	}
	cmd.Flags().IntVar(&rating, "rating", 0, "rating from 1 to 5")
	cmd.Flags().StringVar(&comment, "comment", "", "review text")
	cmd.MarkFlagRequired("rating")
	return cmd
}

func newReviewsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <review-id>",
		Short: "Delete one of your reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeleteReview(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Review deleted.")
			return nil
		},
	}
}

func printReviews(reviews []api.Review) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRATING\tCOMMENT\tPOSTED")
	for _, review := range reviews {
		fmt.Fprintf(w, "%s\t%d/5\t%s\t%s\n",
			review.ID, review.Rating, review.Comment, review.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}
