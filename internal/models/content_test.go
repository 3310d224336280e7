// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "testing"

func TestContentItem_YearInt(t *testing.T) {
	tests := []struct {
		year   string
		want   int
		wantOK bool
	}{
		{"2016", 2016, true},
		{UnknownYear, 0, false},
		{"", 0, false},
		{"20x6", 0, false},
		{"19999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			item := ContentItem{Year: tt.year}
			got, ok := item.YearInt()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("YearInt() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestContentType_Media(t *testing.T) {
	tests := []struct {
		typ  ContentType
		want string
	}{
		{ContentTypeMovie, MediaMovie},
		{ContentTypeSeries, MediaTV},
		{ContentTypeDocumentary, MediaMovie},
		{ContentTypeAnimation, MediaMovie},
	}

	for _, tt := range tests {
		if got := tt.typ.Media(); got != tt.want {
			t.Errorf("%s.Media() = %q, want %q", tt.typ, got, tt.want)
		}
		if !tt.typ.Valid() {
			t.Errorf("%s.Valid() = false, want true", tt.typ)
		}
	}

	if ContentType("podcast").Valid() {
		t.Error("podcast.Valid() = true, want false")
	}
}

func TestContentItem_HasExternalID(t *testing.T) {
	var item ContentItem
	if item.HasExternalID() {
		t.Error("HasExternalID() = true for nil id")
	}
	item.ExternalID = Int64Ptr(0)
	if item.HasExternalID() {
		t.Error("HasExternalID() = true for zero id")
	}
	item.ExternalID = Int64Ptr(603)
	if !item.HasExternalID() {
		t.Error("HasExternalID() = false for 603")
	}
}

func TestContentItem_ProviderMedia(t *testing.T) {
	tests := []struct {
		name string
		item ContentItem
		want string
	}{
		{"animated series", ContentItem{Type: ContentTypeAnimation, Media: MediaTV}, MediaTV},
		{"documentary series", ContentItem{Type: ContentTypeDocumentary, Media: MediaTV}, MediaTV},
		{"animated movie", ContentItem{Type: ContentTypeAnimation, Media: MediaMovie}, MediaMovie},
		{"series without media", ContentItem{Type: ContentTypeSeries}, MediaTV},
		{"animation without media", ContentItem{Type: ContentTypeAnimation}, MediaMovie},
		{"unknown media", ContentItem{Type: ContentTypeSeries, Media: "person"}, MediaTV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.ProviderMedia(); got != tt.want {
				t.Errorf("ProviderMedia() = %q, want %q", got, tt.want)
			}
		})
	}
}
