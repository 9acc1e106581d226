package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zakaryaxali/geoffray-sub000/internal/api"
)

// newGiftsCommand creates the gifts subcommand tree
func newGiftsCommand(container *Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gifts",
		Short: "Browse gift categories and suggestions",
		Long:  `Browse gift categories, fetch AI suggestions, and vote on suggestions attached to an event.`,
	}

	cmd.AddCommand(newGiftsCategoriesCommand(container))
	cmd.AddCommand(newGiftsSuggestionsCommand(container))
	cmd.AddCommand(newGiftsRegenerateCommand(container))
	cmd.AddCommand(newGiftsAddCommand(container))
	cmd.AddCommand(newGiftsRemoveCommand(container))
	cmd.AddCommand(newGiftsVoteCommand(container))

	return cmd
}

// newGiftsCategoriesCommand creates the gifts categories subcommand
func newGiftsCategoriesCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List gift categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := container.Gifts.Categories(context.Background())
			if err != nil {
				return err
			}

			fmt.Println(headerStyle.Render(fmt.Sprintf("%-36s  %s", "ID", "CATEGORY")))
			for _, category := range categories {
				if !category.Active {
					continue
				}
				fmt.Printf("%-36s  %s\n", category.ID, category.NameKey)
			}
			return nil
		},
	}
}

// newGiftsSuggestionsCommand creates the gifts suggestions subcommand
func newGiftsSuggestionsCommand(container *Container) *cobra.Command {
	var categoryID, eventID string

	cmd := &cobra.Command{
		Use:   "suggestions",
		Short: "List gift suggestions",
		Long: `List suggestions for a category or an event.

With --event, lists the suggestions attached to that event. With
--category, fetches fresh suggestions for the category.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var suggestions []api.GiftSuggestion
			var err error
			switch {
			case eventID != "" && categoryID == "":
				suggestions, err = container.Gifts.EventSuggestions(ctx, eventID)
			case categoryID != "":
				suggestions, err = container.Gifts.Suggestions(ctx, categoryID, eventID)
			default:
				return fmt.Errorf("either --category or --event is required")
			}
			if err != nil {
				return err
			}

			if len(suggestions) == 0 {
				fmt.Println(dimStyle.Render("No suggestions found."))
				return nil
			}

			for _, suggestion := range suggestions {
				fmt.Printf("%s %s\n", headerStyle.Render("🎁 "+suggestion.Name), dimStyle.Render(suggestion.PriceRange))
				if suggestion.Description != "" {
					fmt.Printf("   %s\n", suggestion.Description)
				}
				if suggestion.URL != "" {
					fmt.Printf("   %s\n", suggestion.URL)
				}
				fmt.Printf("   %s\n", dimStyle.Render("id: "+suggestion.ID))
			}

			if categoryID != "" {
				// Selection tracking feeds future suggestion ranking.
				if err := container.Gifts.TrackSelection(ctx, categoryID, eventID); err != nil {
					container.Logger.Debug("selection tracking failed", zap.Error(err))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "Gift category ID")
	cmd.Flags().StringVar(&eventID, "event", "", "Event ID")

	return cmd
}

// newGiftsRegenerateCommand creates the gifts regenerate subcommand
func newGiftsRegenerateCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate <event-id>",
		Short: "Regenerate the AI suggestions for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Gifts.Regenerate(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✅ Suggestions regenerated\n")
			return nil
		},
	}
}

// newGiftsAddCommand creates the gifts add subcommand
func newGiftsAddCommand(container *Container) *cobra.Command {
	var req api.GiftSuggestionRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add your own gift suggestion to an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Name == "" || req.EventID == "" {
				return fmt.Errorf("--name and --event are required")
			}

			suggestion, err := container.Gifts.CreateSuggestion(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Printf("✅ Suggestion added: %s\n", suggestion.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Gift name")
	cmd.Flags().StringVar(&req.EventID, "event", "", "Event ID")
	cmd.Flags().StringVar(&req.CategoryID, "category", "", "Gift category ID")
	cmd.Flags().StringVar(&req.Description, "description", "", "Description")
	cmd.Flags().StringVar(&req.PriceRange, "price", "", "Price range, e.g. 20-50")
	cmd.Flags().StringVar(&req.URL, "url", "", "Product link")

	return cmd
}

// newGiftsRemoveCommand creates the gifts remove subcommand
func newGiftsRemoveCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <suggestion-id>",
		Short: "Remove a gift suggestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Gifts.DeleteSuggestion(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✅ Suggestion removed\n")
			return nil
		},
	}
}

// newGiftsVoteCommand creates the gifts vote subcommand
func newGiftsVoteCommand(container *Container) *cobra.Command {
	var retract bool

	cmd := &cobra.Command{
		Use:   "vote <suggestion-id>",
		Short: "Vote for a gift suggestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if retract {
				if err := container.Gifts.RemoveVote(ctx, args[0]); err != nil {
					return err
				}
				fmt.Printf("✅ Vote removed\n")
				return nil
			}

			if err := container.Gifts.Vote(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("✅ Vote recorded\n")
			return nil
		},
	}

	cmd.Flags().BoolVar(&retract, "remove", false, "Remove your vote instead of adding one")

	return cmd
}
