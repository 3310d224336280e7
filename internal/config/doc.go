// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config loads and validates Marquee configuration.

# Configuration Sources

Values are layered with Koanf v2, later layers winning:

  - built-in defaults (defaultConfig)
  - an optional YAML file (CONFIG_PATH, config.yaml, /etc/marquee/config.yaml)
  - environment variables listed in envMappings

# Sections

  - provider: metadata provider endpoint, token, locales, rate limit, circuit breaker
  - cache: metadata cache backend (badger, sqlite, memory), TTL, stale retention
  - catalog: content/user source (file snapshot or postgres) and id map location
  - recommend: result sizes, seed counts, legacy id fallback switch
  - jobs: asynq stale refresh worker (redis)
  - server, security, logging

# Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

Config is immutable after Load() and safe for concurrent reads.
*/
package config
