package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/manhuntgame/manhunt/internal/services/boundary"
)

func newBoundaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boundary",
		Short: "Game-area boundary commands",
	}

	cmd.AddCommand(newBoundaryGetCmd())
	cmd.AddCommand(newBoundarySetCmd())
	cmd.AddCommand(newBoundaryCircleCmd())

	return cmd
}

func newBoundaryGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game>",
		Short: "Get the game-area boundary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result BoundaryResult

			if err := client.Get("/game-boundary?gameId="+url.QueryEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBoundarySetCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set <game>",
		Short: "Set the game-area boundary from a GeoJSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read boundary file: %w", err)
			}

			req := map[string]any{
				"gameId":   args[0],
				"boundary": json.RawMessage(data),
			}

			if err := client.Post("/game-boundary", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Boundary saved")
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to a GeoJSON polygon file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newBoundaryCircleCmd() *cobra.Command {
	var radius float64
	var steps int

	cmd := &cobra.Command{
		Use:   "circle <game> <lat> <lng>",
		Short: "Set a circular game-area boundary around a center point",
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
				"boundary": boundary.Circle(lat, lng, radius, steps),
			}

			if err := client.Post("/game-boundary", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Circular boundary saved (radius %.0fm)", radius))
			return nil
		},
	}

	cmd.Flags().Float64Var(&radius, "radius", 1000, "Radius in meters")
	cmd.Flags().IntVar(&steps, "steps", 64, "Number of polygon vertices")

	return cmd
}
