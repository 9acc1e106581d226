package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zakaryaxali/geoffray-sub000/internal/api"
)

// newChatCommand creates the chat subcommand tree
func newChatCommand(container *Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the gift assistant",
		Long:  `Send messages to the gift-suggestion assistant and review past conversations.`,
	}

	cmd.AddCommand(newChatSendCommand(container))
	cmd.AddCommand(newChatHistoryCommand(container))

	return cmd
}

// newChatSendCommand creates the chat send subcommand
func newChatSendCommand(container *Container) *cobra.Command {
	var chatID string

	cmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a message to the assistant",
		Long:  `Send a message to the gift assistant. Without --chat a new conversation starts; pass the returned chat ID to continue it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := container.Chat.Send(context.Background(), chatID, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("🤖 %s\n", reply.Response)
			fmt.Printf("%s\n", dimStyle.Render("chat: "+reply.ChatID))
			return nil
		},
	}

	cmd.Flags().StringVar(&chatID, "chat", "", "Chat ID to continue an existing conversation")

	return cmd
}

// newChatHistoryCommand creates the chat history subcommand
func newChatHistoryCommand(container *Container) *cobra.Command {
	var eventID string

	cmd := &cobra.Command{
		Use:   "history <chat-id>",
		Short: "Show a conversation's history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var entries []api.ChatEntry
			var err error
			switch {
			case eventID != "":
				entries, err = container.Chat.ByEvent(ctx, eventID)
			case len(args) == 1:
				entries, err = container.Chat.History(ctx, args[0])
			default:
				return fmt.Errorf("a chat ID argument or --event is required")
			}
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println(dimStyle.Render("No messages in this conversation."))
				return nil
			}
			for _, entry := range entries {
				fmt.Printf("🤖 %s\n", entry.Response)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "Show conversations attached to an event instead")

	return cmd
}
