// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/idmap"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Check the catalog and its id mapping table",
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Load the catalog and report what it contains",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOffline()
			if err != nil {
				return err
			}
			src, err := catalog.Open(cmd.Context(), &cfg.Catalog)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			snap, err := src.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			withExternal := 0
			for i := range snap.Items {
				if snap.Items[i].HasExternalID() {
					withExternal++
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Items:  %d (%d with provider ids)\n", len(snap.Items), withExternal)
			fmt.Fprintf(out, "Genres: %d\n", len(snap.Genres))
			fmt.Fprintf(out, "Tags:   %d\n", len(snap.Tags))
			return nil
		},
	}

	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Record the catalog's provider ids in the id mapping table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOffline()
			if err != nil {
				return err
			}
			src, err := catalog.Open(cmd.Context(), &cfg.Catalog)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			snap, err := src.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			store, err := idmap.Open(cfg.Catalog.IDMapPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			n, err := idmap.NewIndexer(store).Index(cmd.Context(), snap.Items)
			if err != nil {
				return err
			}
			total, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d items; table holds %d mappings.\n", n, total)
			return nil
		},
	}

	cmd.AddCommand(checkCmd, indexCmd)
	return cmd
}
