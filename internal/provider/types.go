// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package provider

// Genre is a provider genre reference.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CastMember is one billed performer. Order is the billing position.
type CastMember struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// CrewMember is one crew credit.
type CrewMember struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Credits is the credits block appended to detail responses.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Creator is a series creator listed in created_by.
type Creator struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovieDetails is the movie/{id} response with append_to_response=credits.
type MovieDetails struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title"`
	ReleaseDate   string   `json:"release_date"`
	Overview      string   `json:"overview"`
	PosterPath    string   `json:"poster_path"`
	BackdropPath  string   `json:"backdrop_path"`
	Genres        []Genre  `json:"genres"`
	VoteAverage   float64  `json:"vote_average"`
	VoteCount     int      `json:"vote_count"`
	Popularity    float64  `json:"popularity"`
	Runtime       int      `json:"runtime"`
	Credits       *Credits `json:"credits,omitempty"`
}

// SeriesDetails is the tv/{id} response with append_to_response=credits.
type SeriesDetails struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	OriginalName    string    `json:"original_name"`
	FirstAirDate    string    `json:"first_air_date"`
	Overview        string    `json:"overview"`
	PosterPath      string    `json:"poster_path"`
	BackdropPath    string    `json:"backdrop_path"`
	Genres          []Genre   `json:"genres"`
	VoteAverage     float64   `json:"vote_average"`
	VoteCount       int       `json:"vote_count"`
	Popularity      float64   `json:"popularity"`
	NumberOfSeasons int       `json:"number_of_seasons"`
	CreatedBy       []Creator `json:"created_by"`
	Credits         *Credits  `json:"credits,omitempty"`
}

// ListItem is one entry of a paged list (discover, popular, similar,
// recommendations). Movies fill Title/ReleaseDate, series Name/FirstAirDate.
type ListItem struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title,omitempty"`
	Name          string  `json:"name,omitempty"`
	OriginalTitle string  `json:"original_title,omitempty"`
	OriginalName  string  `json:"original_name,omitempty"`
	ReleaseDate   string  `json:"release_date,omitempty"`
	FirstAirDate  string  `json:"first_air_date,omitempty"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	GenreIDs      []int64 `json:"genre_ids"`
	VoteAverage   float64 `json:"vote_average"`
	Popularity    float64 `json:"popularity"`
	MediaType     string  `json:"media_type,omitempty"`
}

// PagedResults is a page of list items.
type PagedResults struct {
	Page         int        `json:"page"`
	Results      []ListItem `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

// IDs returns the provider ids in page order.
func (p *PagedResults) IDs() []int64 {
	if p == nil {
		return nil
	}
	ids := make([]int64, 0, len(p.Results))
	for i := range p.Results {
		ids = append(ids, p.Results[i].ID)
	}
	return ids
}
