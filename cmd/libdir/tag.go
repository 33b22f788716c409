// ABOUTME: Tag command for inspecting the tag catalogue.
// ABOUTME: Lists tags with their library counts.

package main

import (
	"fmt"

	"github.com/harper/libdir/internal/ui"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Inspect tags",
	Long:  `List the tags used by libraries in the directory.`,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags with counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, source := adapter.ListTags(cmd.Context())
		out := cmd.OutOrStdout()

		if len(tags) == 0 {
			fmt.Fprintln(out, "No tags found.")
			return nil
		}
		fmt.Fprint(out, ui.FormatTagList(tags))
		fmt.Fprint(out, ui.FormatSource(source))
		return nil
	},
}

func init() {
	tagCmd.AddCommand(tagListCmd)
	rootCmd.AddCommand(tagCmd)
}
