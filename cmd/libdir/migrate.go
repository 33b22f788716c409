// ABOUTME: Migrate command creating the directory tables and view.
// ABOUTME: Safe to run repeatedly.

package main

import (
	"errors"
	"fmt"

	"github.com/harper/libdir/internal/db"
	"github.com/harper/libdir/internal/ui"
	"github.com/spf13/cobra"
)

var errWriteDisabled = errors.New("backend writes are disabled: set LIBDIR_DATABASE_URL and a key")

func writeConn() (*db.Conn, error) {
	if backend == nil || backend.Write == nil {
		return nil, errWriteDisabled
	}
	return backend.Write, nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and the library_with_tags view",
	RunE: func(cmd *cobra.Command, args []string) error {
		noView, _ := cmd.Flags().GetBool("no-view")

		conn, err := writeConn()
		if err != nil {
			return err
		}
		if err := db.Migrate(cmd.Context(), conn, !noView); err != nil {
			return err
		}

		msg := "Schema is up to date"
		if noView {
			msg += " (without view)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(msg))
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("no-view", false, "skip the library_with_tags view")
	rootCmd.AddCommand(migrateCmd)
}
