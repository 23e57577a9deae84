package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch newer statuses for every tab",
	Long:  "Load all configured tabs concurrently and update their caches.",
	Args:  cobra.NoArgs,
	RunE:  runRefresh,
}

var refreshParallel int

func init() {
	rootCmd.AddCommand(refreshCmd)
	refreshCmd.Flags().IntVar(&refreshParallel, "parallel", 4, "Maximum number of tabs loaded at once")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	entries := env.feed.Entries()
	counts := make([]int, len(entries))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(refreshParallel, 1))
	for i := range entries {
		g.Go(func() error {
			snap := loadFresh(ctx, env.feed, i)
			if snap == nil {
				counts[i] = -1
				return nil
			}
			counts[i] = snap.Len()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, e := range entries {
		if counts[i] < 0 {
			env.log.Warn("skipping tab without credentials", zap.String("tab", e.Tab.Name))
			fmt.Fprintf(out, "%s: no credentials for account %q\n", e.Tab.Name, e.Tab.Account)
			continue
		}
		fmt.Fprintf(out, "%s: %d statuses\n", e.Tab.Name, counts[i])
	}
	return nil
}
