// ABOUTME: Show command for displaying a single library.
// ABOUTME: Renders the markdown description with glamour.

package main

import (
	"fmt"

	"github.com/harper/libdir/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a library",
	Long:  `Display a library's details with its rendered description.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := adapter.GetLibrary(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get library: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, ui.FormatLibraryHeader(lib))

		content, _ := ui.FormatDescription(lib.Description)
		fmt.Fprint(out, content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
