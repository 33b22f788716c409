// ABOUTME: Seed command loading the sample dataset into the backend.
// ABOUTME: Libraries whose slug already exists are skipped.

package main

import (
	"fmt"
	"time"

	"github.com/harper/libdir/internal/db"
	"github.com/harper/libdir/internal/models"
	"github.com/harper/libdir/internal/sample"
	"github.com/harper/libdir/internal/ui"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample libraries",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := writeConn()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		now := time.Now().UTC()
		added, skipped := 0, 0
		for i, src := range sample.Default().Libraries() {
			exists, err := db.SlugExists(ctx, conn, src.Slug)
			if err != nil {
				return fmt.Errorf("check slug %s: %w", src.Slug, err)
			}
			if exists {
				skipped++
				continue
			}

			lib := models.NewLibrary(src.Name, src.Slug)
			lib.Description = src.Description
			lib.Framework = src.Framework
			lib.WebsiteURL = src.WebsiteURL
			lib.LogoURL = src.LogoURL
			// Keep the dataset order under newest-first listing.
			lib.CreatedAt = now.Add(-time.Duration(i) * time.Second)

			if err := adapter.InsertLibrary(ctx, lib, src.Tags); err != nil {
				return fmt.Errorf("seed %s: %w", src.Slug, err)
			}
			added++
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Seeded %d libraries (%d already present)", added, skipped)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
