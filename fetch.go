package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/tootline/app/feed"
	"github.com/CrestNiraj12/tootline/app/loader"
	"github.com/CrestNiraj12/tootline/domain"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <tab>",
	Short: "Load one tab and print it",
	Long:  "Open the tab from its cache, fetch newer statuses and print the merged timeline.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

var (
	fetchOlder bool
	fetchLimit int
)

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().BoolVar(&fetchOlder, "older", false, "Also fetch one page older than the oldest cached status")
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 0, "Print at most this many statuses (0 prints all)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	i, err := env.feed.Find(args[0])
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	snap := loadFresh(ctx, env.feed, i)
	if snap != nil && fetchOlder {
		snap = env.feed.Load(ctx, i, feed.RequestOlder, snap, 0)
	}
	if snap == nil {
		return noCredentials(env.feed.Entries()[i].Tab.Account)
	}
	printStatuses(cmd.OutOrStdout(), snap.Statuses(), fetchLimit)
	return nil
}

// loadFresh opens tab i and then asks for anything newer than what the
// cache held. It returns nil when the tab's account has no credentials.
func loadFresh(ctx context.Context, f *feed.Feed, i int) *loader.Snapshot {
	snap := f.Load(ctx, i, feed.RequestInitial, nil, 0)
	if snap == nil {
		return nil
	}
	return f.Load(ctx, i, feed.RequestNewer, snap, 0)
}

func noCredentials(account string) error {
	return fmt.Errorf("%w for account %q: store a token in %s",
		domain.ErrNoCredentials, account, tokenPathOf(account))
}

func tokenPathOf(account string) string {
	for _, a := range env.cfg.Accounts {
		if a.Key == account {
			return a.TokenPath
		}
	}
	return "?"
}

// printStatuses writes one line per status; a gap marker follows the
// status it is attached to unless that status is the oldest one.
func printStatuses(w io.Writer, statuses []domain.Status, limit int) {
	last := len(statuses) - 1
	if limit > 0 && len(statuses) > limit {
		statuses = statuses[:limit]
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, st := range statuses {
		who := "@" + st.Acct
		if st.RebloggedBy != "" {
			who += " (boosted by @" + st.RebloggedBy + ")"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", st.ID, who, firstLine(st.Content, 80))
		if st.IsGap && i < last {
			fmt.Fprintln(tw, "\t┄ gap ┄\t")
		}
	}
	_ = tw.Flush()
}

func firstLine(s string, width int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " …"
	}
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s
}
