package main

import (
	"fmt"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/tootline/app"
)

// knownPrefs are shown by "prefs show" even when unset.
var knownPrefs = map[string]int{
	app.KeyLoadItemLimit:     app.DefaultLoadItemLimit,
	app.KeyDatabaseItemLimit: app.DefaultDatabaseItemLimit,
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set an integer preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefsSet,
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd)
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	keys := env.prefs.Keys()
	for k := range knownPrefs {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%d\n", k, env.prefs.Int(k, knownPrefs[k]))
	}
	return tw.Flush()
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if _, ok := knownPrefs[key]; !ok {
		return fmt.Errorf("unknown preference %q", key)
	}
	v, err := strconv.Atoi(args[1])
	if err != nil || v < 1 {
		return fmt.Errorf("preference %s must be a positive integer, got %q", key, args[1])
	}
	if err := env.prefs.SetInt(key, v); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %d\n", key, v)
	return nil
}
