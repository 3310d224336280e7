// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/metacache"
)

// openCache opens the configured cache store without a provider behind it.
func openCache() (*metacache.Gateway, *config.Config, error) {
	cfg, err := config.LoadOffline()
	if err != nil {
		return nil, nil, err
	}
	g := metacache.NewGateway(metacache.Config{
		TTL:             cfg.Cache.TTL,
		StatsSampleSize: cfg.Cache.StatsSampleSize,
	}, nil, metacache.Open(&cfg.Cache))
	return g, cfg, nil
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the metadata cache",
	}

	var asJSON bool
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := openCache()
			if err != nil {
				return err
			}
			defer func() { _ = g.Close() }()

			stats, err := g.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				b, err := json.MarshalIndent(stats, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(b))
				return err
			}

			fmt.Fprintf(out, "Entries:   %d (%d valid, %d expired)\n", stats.Total, stats.Valid, stats.Expired)
			fmt.Fprintf(out, "Size:      ~%d bytes (sample of %d)\n", stats.ApproxSizeBytes, stats.SampleSize)
			fmt.Fprintf(out, "TTL:       %dh\n", stats.TTLHours)
			if stats.NextExpiry != nil {
				fmt.Fprintf(out, "Next expiry: %s\n", stats.NextExpiry.Format(time.RFC3339))
			}
			prefixes := make([]string, 0, len(stats.ByPrefix))
			for p := range stats.ByPrefix {
				prefixes = append(prefixes, p)
			}
			sort.Strings(prefixes)
			for _, p := range prefixes {
				fmt.Fprintf(out, "  %-20s %d\n", p, stats.ByPrefix[p])
			}
			return nil
		},
	}
	statsCmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")

	var prefix string
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cache entries, optionally only those under a key prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := openCache()
			if err != nil {
				return err
			}
			defer func() { _ = g.Close() }()

			n, err := g.ClearCache(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries.\n", n)
			return nil
		},
	}
	clearCmd.Flags().StringVar(&prefix, "prefix", "", "only delete keys starting with this prefix (e.g. movie/)")

	var olderThan time.Duration
	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete entries that expired before the retention window and compact the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, cfg, err := openCache()
			if err != nil {
				return err
			}
			defer func() { _ = g.Close() }()

			retention := cfg.Cache.StaleRetention
			if cmd.Flags().Changed("older-than") {
				retention = olderThan
			}
			return purge(cmd.Context(), cmd, g, time.Now().Add(-retention))
		},
	}
	purgeCmd.Flags().DurationVar(&olderThan, "older-than", 0, "expired for at least this long (default: cache.stale_retention)")

	cmd.AddCommand(statsCmd, clearCmd, purgeCmd)
	return cmd
}

func purge(ctx context.Context, cmd *cobra.Command, g *metacache.Gateway, before time.Time) error {
	n, err := g.PurgeExpired(ctx, before)
	if err != nil {
		return err
	}
	if err := g.Compact(ctx); err != nil {
		return fmt.Errorf("compact: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Purged %d entries expired before %s.\n", n, before.Format(time.RFC3339))
	return nil
}
