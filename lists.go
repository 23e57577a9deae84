package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Manage Mastodon lists",
}

var listsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your lists",
	Args:  cobra.NoArgs,
	RunE:  runListsShow,
}

var listsAddMembersCmd = &cobra.Command{
	Use:   "add-members <list-id> <acct>...",
	Short: "Add accounts to a list",
	Long:  "Resolve each @user@domain and add the accounts to the list. You must follow them first.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runListsAddMembers,
}

var listsAccount string

func init() {
	rootCmd.AddCommand(listsCmd)
	listsCmd.AddCommand(listsShowCmd, listsAddMembersCmd)
	listsCmd.PersistentFlags().StringVar(&listsAccount, "account", "", "Account key (default: first configured account)")
}

func listAccount() string {
	if listsAccount != "" {
		return listsAccount
	}
	return env.defaultAccount()
}

func runListsShow(cmd *cobra.Command, args []string) error {
	svc, err := env.accounts.Lists(listAccount())
	if err != nil {
		return err
	}
	lists, err := svc.Lists(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch lists: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(lists) == 0 {
		fmt.Fprintln(out, "No lists.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, l := range lists {
		fmt.Fprintf(tw, "%s\t%s\n", l.ID, l.Title)
	}
	return tw.Flush()
}

func runListsAddMembers(cmd *cobra.Command, args []string) error {
	svc, err := env.accounts.Lists(listAccount())
	if err != nil {
		return err
	}
	listID, accts := args[0], args[1:]
	if err := svc.AddMembers(cmd.Context(), listID, accts); err != nil {
		return fmt.Errorf("failed to add members to list %s: %w", listID, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %d account(s) to list %s\n", len(accts), listID)
	return nil
}
