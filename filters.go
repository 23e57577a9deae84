package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/tootline/infra/filterdb"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Manage local mute rules",
	Long:  "Mute rules hide statuses by author, by the author's domain, or by keyword.",
}

var filtersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mute rules",
	Args:  cobra.NoArgs,
	RunE:  runFiltersList,
}

var filtersAddUserCmd = &cobra.Command{
	Use:   "add-user <acct>",
	Short: "Mute a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runFiltersAddUser,
}

var filtersAddKeywordCmd = &cobra.Command{
	Use:   "add-keyword <pattern>",
	Short: "Mute statuses containing a keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runFiltersAddKeyword,
}

var filtersAddDomainCmd = &cobra.Command{
	Use:   "add-domain <domain>",
	Short: "Mute every user of an instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runFiltersAddDomain,
}

var filtersRemoveCmd = &cobra.Command{
	Use:   "remove <user|keyword|domain> <value>",
	Short: "Remove a mute rule",
	Args:  cobra.ExactArgs(2),
	RunE:  runFiltersRemove,
}

var (
	filterUserID string
	filterRegex  bool
)

func init() {
	rootCmd.AddCommand(filtersCmd)
	filtersCmd.AddCommand(filtersListCmd, filtersAddUserCmd, filtersAddKeywordCmd, filtersAddDomainCmd, filtersRemoveCmd)

	filtersAddUserCmd.Flags().StringVar(&filterUserID, "id", "", "Account ID, when known")
	filtersAddKeywordCmd.Flags().BoolVar(&filterRegex, "regex", false, "Treat the pattern as a regular expression")
}

func runFiltersList(cmd *cobra.Command, args []string) error {
	rules, err := env.filters.Rules(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(rules) == 0 {
		fmt.Fprintln(out, "No mute rules.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range rules {
		value := r.Value
		if r.Regex {
			value = "/" + value + "/"
		}
		fmt.Fprintf(tw, "%s\t%s\n", r.Kind, value)
	}
	return tw.Flush()
}

func runFiltersAddUser(cmd *cobra.Command, args []string) error {
	acct := strings.TrimPrefix(args[0], "@")
	if err := env.filters.AddUser(cmd.Context(), filterUserID, acct); err != nil {
		return fmt.Errorf("failed to mute user: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Muted @%s\n", acct)
	return nil
}

func runFiltersAddKeyword(cmd *cobra.Command, args []string) error {
	if err := env.filters.AddKeyword(cmd.Context(), args[0], filterRegex); err != nil {
		return fmt.Errorf("failed to mute keyword: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Muted keyword %q\n", args[0])
	return nil
}

func runFiltersAddDomain(cmd *cobra.Command, args []string) error {
	if err := env.filters.AddDomain(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to mute domain: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Muted domain %s\n", args[0])
	return nil
}

func runFiltersRemove(cmd *cobra.Command, args []string) error {
	kind := filterdb.RuleKind(args[0])
	switch kind {
	case filterdb.RuleUser, filterdb.RuleKeyword, filterdb.RuleDomain:
	default:
		return fmt.Errorf("unknown rule kind %q (want user, keyword or domain)", args[0])
	}
	value := args[1]
	removed, err := env.filters.Remove(cmd.Context(), kind, value)
	if err != nil {
		return fmt.Errorf("failed to remove rule: %w", err)
	}
	if !removed {
		fmt.Fprintf(cmd.OutOrStdout(), "No %s rule %q\n", kind, value)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s rule %q\n", kind, value)
	return nil
}
