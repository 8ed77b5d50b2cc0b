package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vasptech/vaspx-actions/internal/action"
	"github.com/vasptech/vaspx-actions/internal/buildinfo"
	"github.com/vasptech/vaspx-actions/internal/catalog"
	"github.com/vasptech/vaspx-actions/internal/product"
)

// newRootCmd builds the command tree. Built per call so tests get fresh flags.
func newRootCmd() *cobra.Command {
	var catalogPath string

	rootCmd := &cobra.Command{
		Use:   "actionctl",
		Short: "Run VaspX custom actions from the terminal",
		Long: `actionctl dispatches utterances to the VaspX custom actions using the
same catalog and registry as the action server, and prints the replies
and slot events the runtime would receive.`,
		Version:      buildinfo.String(),
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "reply catalog YAML (default is the embedded catalog)")

	loadRegistry := func() (*action.Registry, error) {
		store, err := catalog.LoadFile(catalogPath)
		if err != nil {
			return nil, err
		}
		return action.NewDefaultRegistry(store), nil
	}

	rootCmd.AddCommand(
		newListCmd(loadRegistry),
		newRunCmd(loadRegistry),
		newKeysCmd(),
	)
	return rootCmd
}

type registryLoader func() (*action.Registry, error)

func newListCmd(load registryLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered action names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := load()
			if err != nil {
				return err
			}
			for _, name := range registry.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newRunCmd(load registryLoader) *cobra.Command {
	var (
		sender string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "run <action> <utterance...>",
		Short: "Run one action on an utterance",
		Example: `  actionctl run action_compare_products "compare ednect and desalite"
  actionctl run --json action_extract_context "we run a cbse school"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := load()
			if err != nil {
				return err
			}

			req := action.NewRequest(strings.Join(args[1:], " "))
			req.Sender = sender

			out, err := registry.Dispatch(context.Background(), args[0], req)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, out)
			}
			writeText(cmd, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&sender, "sender", "actionctl", "conversation sender ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the wire result the server would return")
	return cmd
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List comparison keys and the products they name",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, key := range product.ComparisonKeys() {
				set, _ := product.ParseComparisonKey(key.String())
				fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s\n", key, strings.Join(set.DisplayNames(), ", "))
			}
		},
	}
}

func writeText(cmd *cobra.Command, out action.Outcome) {
	w := cmd.OutOrStdout()
	if len(out.Replies) == 0 && len(out.Slots) == 0 {
		fmt.Fprintln(w, "(no replies)")
		return
	}
	for _, s := range out.Slots {
		fmt.Fprintf(w, "slot %s=%s\n", s.Name, s.Value)
	}
	for i, r := range out.Replies {
		if i > 0 || len(out.Slots) > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "[%s]\n%s\n", r.Template, r.Text)
	}
}

func writeJSON(cmd *cobra.Command, out action.Outcome) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out.Result())
}
