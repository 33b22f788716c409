// ABOUTME: Import command for restoring libraries from an export file.
// ABOUTME: Accepts YAML or JSON; existing slugs are skipped.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/harper/libdir/internal/db"
	"github.com/harper/libdir/internal/directory"
	"github.com/harper/libdir/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import libraries",
	Long:  `Import libraries from a YAML or JSON export.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0]) //nolint:gosec // User-specified file path is expected CLI behavior
		if err != nil {
			return err
		}

		export, err := decodeExport(args[0], data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		conn, err := writeConn()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		added, skipped := 0, 0
		for _, src := range export.Libraries {
			lib, tags, err := directory.Submission{
				Name:        src.Name,
				Slug:        src.Slug,
				Description: src.Description,
				Framework:   src.Framework,
				WebsiteURL:  src.WebsiteURL,
				LogoURL:     src.LogoURL,
				Tags:        strings.Join(src.Tags, ","),
			}.Normalize()
			if err != nil {
				return fmt.Errorf("library %q: %w", src.Name, err)
			}

			exists, err := db.SlugExists(ctx, conn, lib.Slug)
			if err != nil {
				return err
			}
			if exists {
				skipped++
				continue
			}
			if !src.CreatedAt.IsZero() {
				lib.CreatedAt = src.CreatedAt.UTC()
			}

			if err := adapter.InsertLibrary(ctx, lib, tags); err != nil {
				return fmt.Errorf("import %s: %w", lib.Slug, err)
			}
			added++
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Imported %d libraries (%d skipped)", added, skipped)))
		return nil
	},
}

func decodeExport(path string, data []byte) (ExportData, error) {
	var export ExportData
	if strings.HasSuffix(path, ".json") || strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		err := json.Unmarshal(data, &export)
		return export, err
	}
	err := yaml.Unmarshal(data, &export)
	return export, err
}

func init() {
	rootCmd.AddCommand(importCmd)
}
