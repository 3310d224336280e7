// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package normalize

import (
	"strings"

	"github.com/tomtom215/marquee/internal/models"
)

// Provider genre ids with special meaning for content typing.
const (
	GenreAnimation   int64 = 16
	GenreDocumentary int64 = 99
)

type genreDef struct {
	id      int64
	tvID    int64 // 0 when the tv id equals id
	english string
	spanish string
	aliases []string
}

// genreTable is the bilingual catalog-name -> provider-id vocabulary. Catalog
// genres are free text in English or Spanish.
var genreTable = []genreDef{
	{id: 28, tvID: 10759, english: "Action", spanish: "Acción", aliases: []string{"accion"}},
	{id: 12, tvID: 10759, english: "Adventure", spanish: "Aventura"},
	{id: 16, english: "Animation", spanish: "Animación", aliases: []string{"animacion", "anime"}},
	{id: 35, english: "Comedy", spanish: "Comedia"},
	{id: 80, english: "Crime", spanish: "Crimen", aliases: []string{"policiaco", "policíaco"}},
	{id: 99, english: "Documentary", spanish: "Documental"},
	{id: 18, english: "Drama", spanish: "Drama"},
	{id: 10751, english: "Family", spanish: "Familia", aliases: []string{"familiar"}},
	{id: 14, tvID: 10765, english: "Fantasy", spanish: "Fantasía", aliases: []string{"fantasia"}},
	{id: 36, english: "History", spanish: "Historia"},
	{id: 27, english: "Horror", spanish: "Terror"},
	{id: 10402, english: "Music", spanish: "Música", aliases: []string{"musica", "musical"}},
	{id: 9648, english: "Mystery", spanish: "Misterio"},
	{id: 10749, english: "Romance", spanish: "Romance", aliases: []string{"romántica", "romantica"}},
	{id: 878, tvID: 10765, english: "Science Fiction", spanish: "Ciencia ficción",
		aliases: []string{"ciencia ficcion", "sci-fi", "scifi"}},
	{id: 53, english: "Thriller", spanish: "Suspense", aliases: []string{"suspenso"}},
	{id: 10752, tvID: 10768, english: "War", spanish: "Bélica", aliases: []string{"belica", "guerra"}},
	{id: 37, english: "Western", spanish: "Western", aliases: []string{"oeste"}},
}

// tvOnlyGenres are provider genres that exist only for series.
var tvOnlyGenres = map[int64][2]string{
	10759: {"Action & Adventure", "Acción y aventura"},
	10762: {"Kids", "Infantil"},
	10763: {"News", "Noticias"},
	10764: {"Reality", "Reality"},
	10765: {"Sci-Fi & Fantasy", "Ciencia ficción y fantasía"},
	10766: {"Soap", "Telenovela"},
	10767: {"Talk", "Entrevistas"},
	10768: {"War & Politics", "Bélica y política"},
	10770: {"TV Movie", "Película de TV"},
}

var (
	genreByName = make(map[string]*genreDef)
	genreByID   = make(map[int64]*genreDef)
)

func init() {
	for i := range genreTable {
		g := &genreTable[i]
		genreByID[g.id] = g
		for _, name := range append([]string{g.english, g.spanish}, g.aliases...) {
			genreByName[strings.ToLower(name)] = g
		}
	}
}

// GenreID maps a catalog genre name (English or Spanish, any case) to the
// provider genre id for media. Unknown names report false.
func GenreID(name, media string) (int64, bool) {
	g, ok := genreByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, false
	}
	if media == models.MediaTV && g.tvID != 0 {
		return g.tvID, true
	}
	return g.id, true
}

// GenreIDs maps names in order, dropping unknown names and duplicate ids.
func GenreIDs(names []string, media string) []int64 {
	var out []int64
	seen := make(map[int64]struct{})
	for _, n := range names {
		id, ok := GenreID(n, media)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// GenreName returns the display name of a provider genre id in the language
// family of lang ("es*" gives Spanish, anything else English).
func GenreName(id int64, lang string) (string, bool) {
	spanish := strings.HasPrefix(strings.ToLower(lang), "es")
	if g, ok := genreByID[id]; ok {
		if spanish {
			return g.spanish, true
		}
		return g.english, true
	}
	if names, ok := tvOnlyGenres[id]; ok {
		if spanish {
			return names[1], true
		}
		return names[0], true
	}
	return "", false
}
