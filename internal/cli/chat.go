package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat commands",
	}

	cmd.AddCommand(newChatSendCmd())
	cmd.AddCommand(newChatListCmd())

	return cmd
}

func newChatSendCmd() *cobra.Command {
	var playerID string
	var channel string

	cmd := &cobra.Command{
		Use:   "send <game> <name> <message>",
		Short: "Send a chat message",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"gameId":  args[0],
				"name":    args[1],
				"message": args[2],
			}
			if playerID != "" {
				req["playerId"] = playerID
			}
			if channel != "" {
				req["channel"] = channel
			}

			if err := client.Post("/chat/send", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Message sent")
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player ID (required for the detectives channel)")
	cmd.Flags().StringVar(&channel, "channel", "", "Channel: all or detectives (default: all)")

	return cmd
}

func newChatListCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "list <game>",
		Short: "List chat messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/chat/list?gameId=" + url.QueryEscape(args[0])
			if role != "" {
				path += "&role=" + url.QueryEscape(role)
			}

			var result []ChatMessage

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Viewer role; detectives also see their private channel")

	return cmd
}
