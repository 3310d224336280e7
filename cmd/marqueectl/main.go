// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Command marqueectl performs offline maintenance on a Marquee deployment:
// inspecting and clearing the metadata cache and checking catalog files.
//
// The badger cache backend holds an exclusive lock, so stop the server
// before running cache commands against it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "marqueectl",
		Short:         "Marquee maintenance tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(logging.Config{Level: "warn", Format: "console"})
			if configPath != "" {
				return os.Setenv(config.ConfigPathEnvVar, configPath)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: CONFIG_PATH or ./config.yaml)")

	root.AddCommand(newCacheCmd(), newCatalogCmd())
	return root
}
