package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LakshmirajSunilSawant/tax-assistant/internal/api"
)

var historyCmd = &cobra.Command{
	Use:   "history [conversation-id]",
	Short: "Fetch the server-side transcript for a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
		defer cancel()

		history, err := newAPIClient(logger).GetHistory(ctx, args[0])
		if err != nil {
			if errors.Is(err, api.ErrNotFound) {
				return fmt.Errorf("no conversation with id %s", args[0])
			}
			return err
		}

		fmt.Printf("Conversation %s (%d turns)\n\n", history.ConversationID, len(history.Messages))
		for _, turn := range history.Messages {
			fmt.Printf("%s: %s\n\n", turn.Role, turn.Content)
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset [conversation-id]",
	Short: "Discard backend state for a conversation",
	Long: `Instructs the backend to discard all state for the conversation.
Idempotent: resetting an already-reset conversation succeeds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
		defer cancel()

		ack, err := newAPIClient(logger).ResetConversation(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(ack.Message)
		return nil
	},
}
