package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zakaryaxali/geoffray-sub000/internal/api"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// newEventsCommand creates the events subcommand tree
func newEventsCommand(container *Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage your events",
		Long:  `List, create and update events, and manage participant invitations.`,
	}

	cmd.AddCommand(newEventsListCommand(container))
	cmd.AddCommand(newEventsShowCommand(container))
	cmd.AddCommand(newEventsCreateCommand(container))
	cmd.AddCommand(newEventsUpdateCommand(container))
	cmd.AddCommand(newEventsInviteCommand(container))
	cmd.AddCommand(newEventsAcceptCommand(container))
	cmd.AddCommand(newEventsRescindCommand(container))
	cmd.AddCommand(newEventsRespondCommand(container))
	cmd.AddCommand(newEventsMessagesCommand(container))

	return cmd
}

// newEventsListCommand creates the events list subcommand
func newEventsListCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List events you created or joined",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := container.Events.Mine(context.Background())
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Println(dimStyle.Render("No events yet. Create one with 'geoffray events create'."))
				return nil
			}

			fmt.Println(headerStyle.Render(fmt.Sprintf("%-36s  %-24s  %-16s  %s", "ID", "TITLE", "START", "PARTICIPANTS")))
			for _, event := range events {
				fmt.Printf("%-36s  %-24s  %-16s  %d\n",
					event.ID,
					truncate(event.Title, 24),
					event.StartDate.Local().Format("2006-01-02 15:04"),
					event.ParticipantsCount,
				)
			}
			return nil
		},
	}
}

// newEventsShowCommand creates the events show subcommand
func newEventsShowCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <event-id>",
		Short: "Show an event with its participants and open invitations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := container.Events.Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			event := detail.Event
			fmt.Println(headerStyle.Render("📅 " + event.Title))
			if event.Description != "" {
				fmt.Printf("   %s\n", event.Description)
			}
			fmt.Printf("   Starts: %s\n", event.StartDate.Local().Format(time.RFC1123))
			if event.EndDate != nil {
				fmt.Printf("   Ends:   %s\n", event.EndDate.Local().Format(time.RFC1123))
			}
			if event.Location != "" {
				fmt.Printf("   Where:  %s\n", event.Location)
			}
			if event.EventOccasion != "" {
				fmt.Printf("   Occasion: %s\n", event.EventOccasion)
			}

			fmt.Printf("\n%s\n", headerStyle.Render(fmt.Sprintf("👥 Participants (%d)", len(detail.Participants))))
			for _, p := range detail.Participants {
				fmt.Printf("   %s %s <%s> [%s]\n", p.FirstName, p.LastName, p.Email, p.Status)
			}

			if len(detail.PendingInvitations) > 0 {
				fmt.Printf("\n%s\n", headerStyle.Render(fmt.Sprintf("✉️  Pending invitations (%d)", len(detail.PendingInvitations))))
				for _, inv := range detail.PendingInvitations {
					target := inv.Email
					if target == "" {
						target = inv.Phone
					}
					fmt.Printf("   %s (expires %s)\n", target, inv.ExpiresAt)
				}
			}
			return nil
		},
	}
}

// newEventsCreateCommand creates the events create subcommand
func newEventsCreateCommand(container *Container) *cobra.Command {
	var req api.EventCreateRequest
	var persona, occasion string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Long: `Create a new event. When --persona and --occasion are both given the
event is created with AI-generated gift suggestions attached.`,
		Example: `  geoffray events create --title "Mum's 60th" --start 2026-10-10T18:00:00Z
  geoffray events create --title "Secret Santa" --start 2026-12-20T19:00:00Z --persona "loves hiking" --occasion birthday`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Title == "" || req.StartDate == "" {
				return fmt.Errorf("--title and --start are required")
			}

			ctx := context.Background()
			var event *api.Event
			var err error
			if persona != "" && occasion != "" {
				event, err = container.Events.CreateWithGifts(ctx, api.GiftEventCreateRequest{
					EventCreateRequest: req,
					GifteePersona:      persona,
					EventOccasion:      occasion,
				})
			} else {
				event, err = container.Events.Create(ctx, req)
			}
			if err != nil {
				return err
			}

			fmt.Printf("✅ Event created: %s\n", event.Title)
			fmt.Printf("🆔 %s\n", event.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "Event title")
	cmd.Flags().StringVar(&req.Description, "description", "", "Event description")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "Start date, RFC 3339")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "End date, RFC 3339")
	cmd.Flags().StringVar(&req.Location, "location", "", "Event location")
	cmd.Flags().StringVar(&persona, "persona", "", "Giftee persona for gift suggestions")
	cmd.Flags().StringVar(&occasion, "occasion", "", "Occasion for gift suggestions")

	return cmd
}

// newEventsUpdateCommand creates the events update subcommand
func newEventsUpdateCommand(container *Container) *cobra.Command {
	var req api.UpdateEventRequest

	cmd := &cobra.Command{
		Use:   "update <event-id>",
		Short: "Update an event you created",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := container.Events.Update(context.Background(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Printf("✅ Event updated: %s\n", event.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "New title")
	cmd.Flags().StringVar(&req.Description, "description", "", "New description")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "New start date, RFC 3339")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "New end date, RFC 3339")
	cmd.Flags().StringVar(&req.Location, "location", "", "New location")
	cmd.Flags().BoolVar(&req.RemoveEndDate, "remove-end", false, "Clear the end date")

	return cmd
}

// newEventsInviteCommand creates the events invite subcommand
func newEventsInviteCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "invite <event-id> <email>",
		Short: "Invite a participant by email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := container.Events.InviteParticipant(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}

			if !result.Success {
				return fmt.Errorf("invitation failed: %s", result.Message)
			}

			fmt.Printf("✅ Invitation sent to %s\n", args[1])
			if !result.UserExists && result.InviteLink != "" {
				fmt.Printf("🔗 No account yet. Share this link: %s\n", result.InviteLink)
			}
			return nil
		},
	}
}

// newEventsAcceptCommand creates the events accept subcommand
func newEventsAcceptCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "accept <invite-code>",
		Short: "Accept an event invitation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one invite code is required")
			}

			ctx := context.Background()
			validation, err := container.Events.ValidateInvite(ctx, args[0])
			if err != nil {
				return err
			}
			if !validation.Valid {
				if validation.Expired {
					return fmt.Errorf("invitation expired: %s", validation.Message)
				}
				return fmt.Errorf("invalid invitation: %s", validation.Message)
			}

			eventID, err := container.Events.AcceptInvite(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("✅ Joined %s\n", validation.EventTitle)
			fmt.Printf("🆔 Event ID: %s\n", eventID)
			return nil
		},
	}
}

// newEventsRescindCommand creates the events rescind subcommand
func newEventsRescindCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rescind <event-id> <email>",
		Short: "Withdraw a pending invitation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Events.RescindInvitation(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("✅ Invitation for %s withdrawn\n", args[1])
			return nil
		},
	}
}

// newEventsRespondCommand creates the events respond subcommand
func newEventsRespondCommand(container *Container) *cobra.Command {
	return &cobra.Command{
		Use:   "respond <event-id> <accepted|declined>",
		Short: "Respond to an event you were added to",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := args[1]
			if status != "accepted" && status != "declined" {
				return fmt.Errorf("status must be 'accepted' or 'declined', got %q", status)
			}

			if err := container.Events.UpdateParticipantStatus(context.Background(), args[0], status); err != nil {
				return err
			}
			fmt.Printf("✅ Marked as %s\n", status)
			return nil
		},
	}
}

// newEventsMessagesCommand creates the events messages subcommand tree
func newEventsMessagesCommand(container *Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Read and post on an event's message board",
	}

	var parentID string
	postCmd := &cobra.Command{
		Use:   "post <event-id> <content>",
		Short: "Post a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := container.Messages.Create(context.Background(), args[0], args[1], parentID)
			if err != nil {
				return err
			}
			fmt.Printf("✅ Posted message %s\n", message.ID)
			return nil
		},
	}
	postCmd.Flags().StringVar(&parentID, "reply-to", "", "Parent message ID for a threaded reply")

	listCmd := &cobra.Command{
		Use:   "list <event-id>",
		Short: "List the event's messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := container.Messages.List(context.Background(), args[0])
			if err != nil {
				return err
			}

			if len(messages) == 0 {
				fmt.Println(dimStyle.Render("No messages yet."))
				return nil
			}

			for _, message := range messages {
				author := message.User.Email
				if message.User.FirstName != "" {
					author = message.User.FirstName + " " + message.User.LastName
				}
				fmt.Printf("%s %s\n", headerStyle.Render(author), dimStyle.Render(message.CreatedAt.Local().Format("2006-01-02 15:04")))
				fmt.Printf("  %s\n", message.Content)
			}
			return nil
		},
	}

	cmd.AddCommand(postCmd)
	cmd.AddCommand(listCmd)
	return cmd
}

// truncate shortens a string to maxLen with an ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
