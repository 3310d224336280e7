// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points config discovery at an empty directory so a stray
// config.yaml in the working tree does not leak into tests.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	orig := DefaultConfigPaths
	DefaultConfigPaths = nil
	t.Cleanup(func() { DefaultConfigPaths = orig })
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
	}
	if cfg.Cache.Backend != "badger" {
		t.Errorf("Cache.Backend = %q, want badger", cfg.Cache.Backend)
	}
	if cfg.Cache.StatsSampleSize != 100 {
		t.Errorf("Cache.StatsSampleSize = %d, want 100", cfg.Cache.StatsSampleSize)
	}
	if cfg.Recommend.FavoriteSeeds != 3 || cfg.Recommend.HistorySeeds != 3 {
		t.Errorf("seeds = %d/%d, want 3/3", cfg.Recommend.FavoriteSeeds, cfg.Recommend.HistorySeeds)
	}
	if cfg.Recommend.LegacyIDFallback {
		t.Error("LegacyIDFallback should default to false")
	}
	if cfg.Provider.DefaultLanguage != "es-ES" {
		t.Errorf("Provider.DefaultLanguage = %q, want es-ES", cfg.Provider.DefaultLanguage)
	}
}

func TestLoadWithKoanf_MissingToken(t *testing.T) {
	isolate(t)

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("LoadWithKoanf() succeeded without PROVIDER_ACCESS_TOKEN")
	}
}

func TestLoadOffline_TokenOptional(t *testing.T) {
	isolate(t)
	t.Setenv("PROVIDER_ACCESS_TOKEN", "")

	cfg, err := LoadOffline()
	if err != nil {
		t.Fatalf("LoadOffline() error = %v", err)
	}
	if cfg.Provider.AccessToken != "" {
		t.Errorf("AccessToken = %q, want empty", cfg.Provider.AccessToken)
	}

	t.Setenv("CACHE_BACKEND", "redis")
	if _, err := LoadOffline(); err == nil {
		t.Error("LoadOffline() accepted an unknown cache backend")
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PROVIDER_ACCESS_TOKEN", "tok")
	t.Setenv("CACHE_BACKEND", "sqlite")
	t.Setenv("CACHE_PATH", "/tmp/marquee.db")
	t.Setenv("CACHE_TTL", "48h")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PROVIDER_LANGUAGES", "en-US, es-ES ,")
	t.Setenv("PROVIDER_LANGUAGE", "en-US")
	t.Setenv("RECOMMEND_LEGACY_ID_FALLBACK", "true")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Provider.AccessToken != "tok" {
		t.Errorf("AccessToken = %q, want tok", cfg.Provider.AccessToken)
	}
	if cfg.Cache.Backend != "sqlite" || cfg.Cache.Path != "/tmp/marquee.db" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL != 48*time.Hour {
		t.Errorf("Cache.TTL = %v, want 48h", cfg.Cache.TTL)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if len(cfg.Provider.SupportedLanguages) != 2 || cfg.Provider.SupportedLanguages[1] != "es-ES" {
		t.Errorf("SupportedLanguages = %v", cfg.Provider.SupportedLanguages)
	}
	if !cfg.Recommend.LegacyIDFallback {
		t.Error("LegacyIDFallback = false, want true")
	}
}

func TestLoadWithKoanf_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	content := `
provider:
  access_token: from-file
cache:
  backend: memory
  ttl: 12h
catalog:
  source: file
  path: /srv/catalog.yaml
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("CACHE_TTL", "36h")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Provider.AccessToken != "from-file" {
		t.Errorf("AccessToken = %q, want from-file", cfg.Provider.AccessToken)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL != 36*time.Hour {
		t.Errorf("Cache.TTL = %v, env should win over file", cfg.Cache.TTL)
	}
	if cfg.Catalog.Path != "/srv/catalog.yaml" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"PROVIDER_ACCESS_TOKEN": "provider.access_token",
		"TMDB_ACCESS_TOKEN":     "provider.access_token",
		"CACHE_TTL":             "cache.ttl",
		"DATABASE_URL":          "catalog.database_url",
		"LOG_LEVEL":             "logging.level",
		"HOME":                  "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
