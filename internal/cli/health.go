package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/edgepuzzle/internal/api/response"
)

func newHealthCmd() *cobra.Command {
	var (
		wait     time.Duration
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Long: `Check that the puzzle server is answering.

With --wait the check is retried until the server is healthy or the wait
runs out, which is useful right after starting a server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}

			result, err := waitHealthy(cmd.Context(), wait, interval)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 0, "Keep retrying for up to this long")
	cmd.Flags().DurationVar(&interval, "interval", 250*time.Millisecond, "Delay between retries with --wait")

	return cmd
}

// waitHealthy polls the health endpoint until it answers or wait elapses.
// A zero wait makes a single attempt.
func waitHealthy(ctx context.Context, wait, interval time.Duration) (response.Health, error) {
	deadline := time.Now().Add(wait)

	for attempt := 1; ; attempt++ {
		var result response.Health
		err := client.Get(ctx, "/api/v1/health", &result)
		if err == nil {
			return result, nil
		}
		if wait <= 0 {
			return response.Health{}, err
		}
		if !time.Now().Add(interval).Before(deadline) {
			return response.Health{}, fmt.Errorf("server not healthy after %d attempts: %w", attempt, err)
		}

		select {
		case <-ctx.Done():
			return response.Health{}, ctx.Err()
		case <-time.After(interval):
		}
	}
}
