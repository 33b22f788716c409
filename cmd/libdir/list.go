// ABOUTME: List command for browsing the directory in the terminal.
// ABOUTME: Supports search, framework and tag filters with pagination.

package main

import (
	"fmt"

	"github.com/harper/libdir/internal/models"
	"github.com/harper/libdir/internal/pagination"
	"github.com/harper/libdir/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List libraries",
	Long:  `List libraries 30 per page, optionally filtered by name, framework or tag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		searchFlag, _ := cmd.Flags().GetString("search")
		frameworkFlag, _ := cmd.Flags().GetString("framework")
		tagFlag, _ := cmd.Flags().GetString("tag")
		pageFlag, _ := cmd.Flags().GetString("page")

		page := pagination.ParsePage(pageFlag)
		filters := models.Filters{Query: searchFlag, Framework: frameworkFlag, Tag: tagFlag}

		result := adapter.QueryLibraries(cmd.Context(), filters, pagination.Offset(page), pagination.PageSize)
		out := cmd.OutOrStdout()

		if len(result.Libraries) == 0 {
			fmt.Fprintln(out, "No libraries found.")
			return nil
		}

		for i := range result.Libraries {
			fmt.Fprint(out, ui.FormatLibraryListItem(&result.Libraries[i]))
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, ui.FormatPagination(pagination.NewView(page, result.Total, len(result.Libraries))))
		fmt.Fprint(out, ui.FormatSource(result.Source))
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "substring of the library name")
	listCmd.Flags().StringP("framework", "f", "", "exact framework (All for any)")
	listCmd.Flags().StringP("tag", "t", "", "filter by tag")
	listCmd.Flags().StringP("page", "p", "1", "page number")
	rootCmd.AddCommand(listCmd)
}
