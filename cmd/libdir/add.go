// ABOUTME: Add command for submitting a library from the terminal.
// ABOUTME: Uses the same normalization and write path as the web form.

package main

import (
	"errors"
	"fmt"

	"github.com/harper/libdir/internal/directory"
	"github.com/harper/libdir/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Submit a library",
	Long:  `Submit a new library. Tags are comma-separated; the slug is derived from the name when omitted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sub := directory.Submission{Name: args[0]}
		sub.Slug, _ = cmd.Flags().GetString("slug")
		sub.Description, _ = cmd.Flags().GetString("description")
		sub.Framework, _ = cmd.Flags().GetString("framework")
		sub.WebsiteURL, _ = cmd.Flags().GetString("website")
		sub.LogoURL, _ = cmd.Flags().GetString("logo")
		sub.Tags, _ = cmd.Flags().GetString("tags")

		lib, err := adapter.Submit(cmd.Context(), sub)
		if err != nil {
			if errors.Is(err, directory.ErrNotConfigured) {
				return fmt.Errorf("submissions are disabled: set LIBDIR_DATABASE_URL and a key")
			}
			return fmt.Errorf("failed to submit library: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Submitted %s (%s)", lib.Name, lib.Slug)))
		return nil
	},
}

func init() {
	addCmd.Flags().String("slug", "", "URL slug")
	addCmd.Flags().StringP("description", "d", "", "markdown description")
	addCmd.Flags().StringP("framework", "f", "", "framework label (default React)")
	addCmd.Flags().String("website", "", "website URL")
	addCmd.Flags().String("logo", "", "logo URL")
	addCmd.Flags().StringP("tags", "t", "", "comma-separated tags")
	rootCmd.AddCommand(addCmd)
}
