// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package provider

import "strings"

// Locales is the table of response languages the provider is asked for.
// Lookups are case-insensitive and a bare language ("es") matches the first
// configured region for it.
type Locales struct {
	byKey    map[string]string
	byLang   map[string]string
	fallback string
}

// NewLocales builds the table. fallback is used for anything unsupported and
// is added to the table if missing.
func NewLocales(supported []string, fallback string) *Locales {
	l := &Locales{
		byKey:    make(map[string]string, len(supported)+1),
		byLang:   make(map[string]string, len(supported)+1),
		fallback: fallback,
	}
	for _, tag := range append(append([]string(nil), supported...), fallback) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := l.byKey[key]; ok {
			continue
		}
		l.byKey[key] = tag
		lang, _, _ := strings.Cut(key, "-")
		if _, ok := l.byLang[lang]; !ok {
			l.byLang[lang] = tag
		}
	}
	return l
}

// Resolve returns the canonical supported tag for lang, or the fallback.
func (l *Locales) Resolve(lang string) string {
	key := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(lang, "_", "-")))
	if key == "" {
		return l.fallback
	}
	if tag, ok := l.byKey[key]; ok {
		return tag
	}
	if !strings.Contains(key, "-") {
		if tag, ok := l.byLang[key]; ok {
			return tag
		}
	}
	return l.fallback
}

// Supported reports whether lang resolves to itself rather than the fallback.
func (l *Locales) Supported(lang string) bool {
	_, ok := l.byKey[strings.ToLower(strings.TrimSpace(lang))]
	return ok
}

// Default returns the fallback tag.
func (l *Locales) Default() string {
	return l.fallback
}
