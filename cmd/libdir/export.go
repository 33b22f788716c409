// ABOUTME: Export command for backing up the directory.
// ABOUTME: Writes every library with its tags as YAML or JSON.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/harper/libdir/internal/db"
	"github.com/harper/libdir/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const exportVersion = "1.0"

type ExportData struct {
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Version    string           `json:"version" yaml:"version"`
	Libraries  []models.Library `json:"libraries" yaml:"libraries"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export libraries",
	Long:  `Export every stored library to YAML or JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		conn, err := writeConn()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		libs, err := db.QueryLibraries(ctx, conn, models.Filters{}, nil, 0, 0)
		if err != nil {
			return fmt.Errorf("failed to list libraries: %w", err)
		}
		if err := db.AttachTags(ctx, conn, libs); err != nil {
			return fmt.Errorf("failed to load tags: %w", err)
		}

		export := ExportData{ExportedAt: time.Now().UTC(), Version: exportVersion, Libraries: libs}

		var data []byte
		switch format {
		case "yaml", "yml":
			data, err = yaml.Marshal(export)
		case "json":
			data, err = json.MarshalIndent(export, "", "  ")
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
		if err != nil {
			return err
		}

		if outputPath == "" || outputPath == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(outputPath, data, 0644)
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "yaml", "export format (yaml|json)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	rootCmd.AddCommand(exportCmd)
}
