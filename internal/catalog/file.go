// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/marquee/internal/models"
)

// fileDocument is the on-disk snapshot layout. Favorites reference item ids.
type fileDocument struct {
	Items  []models.ContentItem `json:"items" yaml:"items"`
	Genres []models.Genre       `json:"genres" yaml:"genres"`
	Tags   []models.Tag         `json:"tags" yaml:"tags"`
	Users  []fileUser           `json:"users" yaml:"users"`
}

type fileUser struct {
	UserID    string              `json:"user_id" yaml:"user_id"`
	History   []models.WatchEntry `json:"history" yaml:"history"`
	Favorites []string            `json:"favorites" yaml:"favorites"`
}

type loadedFile struct {
	modTime  time.Time
	size     int64
	snapshot *Snapshot
	users    map[string]*fileUser
}

// FileSource reads a JSON or YAML snapshot, chosen by file extension
// (.yaml and .yml are YAML, anything else is JSON). The file is parsed again
// only when its modification time or size changes.
type FileSource struct {
	path string

	mu     sync.Mutex
	loaded *loadedFile
}

// NewFileSource creates a source for path. The file is not read until the
// first call.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Snapshot implements Source.
func (f *FileSource) Snapshot(ctx context.Context) (*Snapshot, error) {
	l, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	return l.snapshot, nil
}

// UserContext implements Source. Favorites missing from the catalog are
// skipped.
func (f *FileSource) UserContext(ctx context.Context, userID string) (*models.UserContext, error) {
	l, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := l.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	uc := &models.UserContext{
		UserID:    u.UserID,
		History:   append([]models.WatchEntry(nil), u.History...),
		Favorites: make([]models.ContentItem, 0, len(u.Favorites)),
	}
	for _, id := range u.Favorites {
		if item, err := l.snapshot.Item(id); err == nil {
			uc.Favorites = append(uc.Favorites, *item)
		}
	}
	return uc, nil
}

// Close implements Source.
func (f *FileSource) Close() error { return nil }

func (f *FileSource) load(ctx context.Context) (*loadedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(f.path)
	if err != nil {
		return nil, fmt.Errorf("stat catalog file: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if l := f.loaded; l != nil && l.modTime.Equal(info.ModTime()) && l.size == info.Size() {
		return l, nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	doc, err := decodeDocument(f.path, data)
	if err != nil {
		return nil, err
	}

	l := &loadedFile{
		modTime:  info.ModTime(),
		size:     info.Size(),
		snapshot: NewSnapshot(doc.Items, doc.Genres, doc.Tags),
		users:    make(map[string]*fileUser, len(doc.Users)),
	}
	for i := range doc.Users {
		l.users[doc.Users[i].UserID] = &doc.Users[i]
	}
	f.loaded = l
	return l, nil
}

func decodeDocument(path string, data []byte) (*fileDocument, error) {
	var doc fileDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml catalog: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse json catalog: %w", err)
		}
	}
	for i := range doc.Items {
		if doc.Items[i].ID == "" {
			return nil, fmt.Errorf("catalog item %d has no id", i)
		}
		if doc.Items[i].Year == "" {
			doc.Items[i].Year = models.UnknownYear
		}
	}
	return &doc, nil
}
