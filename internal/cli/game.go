package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game and roster commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGamePlayersCmd())
	cmd.AddCommand(newGamePositionCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CreateGameResult

			if err := client.Post("/games", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	var role string
	var gameID string

	cmd := &cobra.Command{
		Use:   "join <name>",
		Short: "Join a game, or start a new one when no game code is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": args[0]}
			if role != "" {
				req["role"] = role
			}
			if gameID != "" {
				req["gameId"] = gameID
			}

			var result JoinResult

			if err := client.Post("/join", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Requested role: mr_x or detective (default: detective)")
	cmd.Flags().StringVar(&gameID, "game", "", "Game code to join (default: create a new game)")

	return cmd
}

func newGamePlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players <game>",
		Short: "List the players in a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get("/players?gameId="+url.QueryEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePositionCmd() *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   "position <game> <lat> <lng>",
		Short: "Report a player's GPS position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q", args[1])
			}
			lng, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q", args[2])
			}

			req := map[string]any{
				"gameId":   args[0],
				"playerId": playerID,
				// The wire format is (lng, lat), GeoJSON order
				"position": []float64{lng, lat},
			}

			if err := client.Post("/update-position", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Position updated for %s", playerID))
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player ID (required)")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}
