package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTMDBBaseURL = "https://api.themoviedb.org/3"

	tmdbPosterBase  = "https://image.tmdb.org/t/p/w500"
	tmdbProfileBase = "https://image.tmdb.org/t/p/w185"
	tmdbThumbBase   = "https://image.tmdb.org/t/p/w185"

	// DefaultLanguage drives titles and plots; the user base is Brazilian.
	DefaultLanguage = "pt-BR"
)

// TMDBClient covers the lookups OMDb cannot do: localized titles and
// person search.
type TMDBClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewTMDBClient(apiKey, baseURL string) *TMDBClient {
	if baseURL == "" {
		baseURL = DefaultTMDBBaseURL
	}
	return &TMDBClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *TMDBClient) Configured() bool {
	return c.apiKey != "" && c.apiKey != "your_tmdb_api_key_here"
}

type tmdbMovie struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title"`
	ReleaseDate   string   `json:"release_date"`
	PosterPath    string   `json:"poster_path"`
	Overview      string   `json:"overview"`
	VoteAverage   float64  `json:"vote_average"`
	VoteCount     int64    `json:"vote_count"`
	Character     string   `json:"character"`
	Job           string   `json:"job"`
}

type tmdbSearchMovieResponse struct {
	Results []tmdbMovie `json:"results"`
}

// MovieSummary is one search hit, already localized.
type MovieSummary struct {
	TmdbID      int64    `json:"tmdb_id"`
	Title       string   `json:"title"`
	Original    string   `json:"original_title"`
	Year        *string  `json:"year"`
	Poster      *string  `json:"poster"`
	Plot        *string  `json:"plot"`
	VoteAverage *float64 `json:"vote_average"`
	VoteCount   *int64   `json:"vote_count"`
	ReleaseDate *string  `json:"release_date"`
}

func (c *TMDBClient) SearchMovie(ctx context.Context, query, language string) ([]MovieSummary, error) {
	if !c.Configured() {
		return nil, ErrKeyNotConfigured
	}
	if language == "" {
		language = DefaultLanguage
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("language", language)
	params.Set("include_adult", "false")

	var resp tmdbSearchMovieResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, err
	}

	out := make([]MovieSummary, 0, len(resp.Results))
	for _, m := range resp.Results {
		out = append(out, MovieSummary{
			TmdbID:      m.ID,
			Title:       m.Title,
			Original:    m.OriginalTitle,
			Year:        yearOf(m.ReleaseDate),
			Poster:      imageURL(tmdbPosterBase, m.PosterPath),
			Plot:        optional(m.Overview),
			VoteAverage: optionalFloat(m.VoteAverage),
			VoteCount:   optionalInt(m.VoteCount),
			ReleaseDate: optional(m.ReleaseDate),
		})
	}
	return out, nil
}

type tmdbMovieDetailResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	Overview      string  `json:"overview"`
	Runtime       int     `json:"runtime"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
	OriginalLang  string  `json:"original_language"`
	Genres        []struct {
		Name string `json:"name"`
	} `json:"genres"`
	ProductionCountries []struct {
		Name string `json:"name"`
	} `json:"production_countries"`
	Credits struct {
		Cast []struct {
			Name string `json:"name"`
		} `json:"cast"`
		Crew []struct {
			Name string `json:"name"`
			Job  string `json:"job"`
		} `json:"crew"`
	} `json:"credits"`
	ExternalIDs struct {
		ImdbID string `json:"imdb_id"`
	} `json:"external_ids"`
}

// MovieDetail is the full record, with credits folded into director and a
// short actor list the way the add-media form expects them.
type MovieDetail struct {
	TmdbID      int64    `json:"tmdb_id"`
	ImdbID      *string  `json:"imdb_id"`
	Title       string   `json:"title"`
	Original    string   `json:"original_title"`
	Year        *string  `json:"year"`
	ReleaseDate *string  `json:"release_date"`
	Poster      *string  `json:"poster"`
	Backdrop    *string  `json:"backdrop"`
	Plot        *string  `json:"plot"`
	Genres      *string  `json:"genres"`
	Runtime     *string  `json:"runtime"`
	VoteAverage *float64 `json:"vote_average"`
	VoteCount   *int64   `json:"vote_count"`
	Country     *string  `json:"country"`
	Director    *string  `json:"director"`
	Actors      *string  `json:"actors"`
	Language    *string  `json:"original_language"`
}

const maxActorsListed = 5

func (c *TMDBClient) MovieDetail(ctx context.Context, tmdbID int64, language string) (*MovieDetail, error) {
	if !c.Configured() {
		return nil, ErrKeyNotConfigured
	}
	if language == "" {
		language = DefaultLanguage
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", language)
	params.Set("append_to_response", "credits,external_ids")

	var m tmdbMovieDetailResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), params, &m); err != nil {
		return nil, err
	}

	var director *string
	for _, person := range m.Credits.Crew {
		if person.Job == "Director" {
			director = optional(person.Name)
			break
		}
	}

	var actorNames []string
	for i, actor := range m.Credits.Cast {
		if i == maxActorsListed {
			break
		}
		actorNames = append(actorNames, actor.Name)
	}

	var genres []string
	for _, g := range m.Genres {
		genres = append(genres, g.Name)
	}
	var countries []string
	for _, pc := range m.ProductionCountries {
		countries = append(countries, pc.Name)
	}

	var runtime *string
	if m.Runtime > 0 {
		r := fmt.Sprintf("%d min", m.Runtime)
		runtime = &r
	}

	return &MovieDetail{
		TmdbID:      m.ID,
		ImdbID:      optional(m.ExternalIDs.ImdbID),
		Title:       m.Title,
		Original:    m.OriginalTitle,
		Year:        yearOf(m.ReleaseDate),
		ReleaseDate: optional(m.ReleaseDate),
		Poster:      imageURL(tmdbPosterBase, m.PosterPath),
		Backdrop:    imageURL("https://image.tmdb.org/t/p/original", m.BackdropPath),
		Plot:        optional(m.Overview),
		Genres:      optional(strings.Join(genres, ", ")),
		Runtime:     runtime,
		VoteAverage: optionalFloat(m.VoteAverage),
		VoteCount:   optionalInt(m.VoteCount),
		Country:     optional(strings.Join(countries, ", ")),
		Director:    director,
		Actors:      optional(strings.Join(actorNames, ", ")),
		Language:    optional(m.OriginalLang),
	}, nil
}

type tmdbSearchPersonResponse struct {
	Results []struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		ProfilePath string `json:"profile_path"`
		Department  string `json:"known_for_department"`
		KnownFor    []struct {
			Title string `json:"title"`
			Name  string `json:"name"`
		} `json:"known_for"`
	} `json:"results"`
}

type PersonSummary struct {
	TmdbPersonID int64   `json:"tmdb_person_id"`
	Name         string  `json:"name"`
	Profile      *string `json:"profile_path"`
	Department   *string `json:"known_for_department"`
	KnownFor     *string `json:"known_for"`
}

func (c *TMDBClient) SearchPerson(ctx context.Context, query, language string) ([]PersonSummary, error) {
	if !c.Configured() {
		return nil, ErrKeyNotConfigured
	}
	if language == "" {
		language = DefaultLanguage
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("language", language)
	params.Set("include_adult", "false")

	var resp tmdbSearchPersonResponse
	if err := c.get(ctx, "/search/person", params, &resp); err != nil {
		return nil, err
	}

	out := make([]PersonSummary, 0, len(resp.Results))
	for _, p := range resp.Results {
		var titles []string
		for _, k := range p.KnownFor {
			if k.Title != "" {
				titles = append(titles, k.Title)
			} else if k.Name != "" {
				titles = append(titles, k.Name)
			}
		}
		out = append(out, PersonSummary{
			TmdbPersonID: p.ID,
			Name:         p.Name,
			Profile:      imageURL(tmdbProfileBase, p.ProfilePath),
			Department:   optional(p.Department),
			KnownFor:     optional(strings.Join(titles, ", ")),
		})
	}
	return out, nil
}

type tmdbCreditsResponse struct {
	Cast []tmdbMovie `json:"cast"`
	Crew []tmdbMovie `json:"crew"`
}

type CreditEntry struct {
	TmdbID    int64   `json:"tmdb_id"`
	Title     string  `json:"title"`
	Year      *string `json:"year"`
	Character *string `json:"character,omitempty"`
	Poster    *string `json:"poster"`
}

type PersonCredits struct {
	AsActor    []CreditEntry `json:"as_actor"`
	AsDirector []CreditEntry `json:"as_director"`
}

// PersonMovieCredits splits a filmography into acting and directing work.
func (c *TMDBClient) PersonMovieCredits(ctx context.Context, personID int64, language string) (*PersonCredits, error) {
	if !c.Configured() {
		return nil, ErrKeyNotConfigured
	}
	if language == "" {
		language = DefaultLanguage
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", language)

	var resp tmdbCreditsResponse
	if err := c.get(ctx, fmt.Sprintf("/person/%d/movie_credits", personID), params, &resp); err != nil {
		return nil, err
	}

	credits := &PersonCredits{
		AsActor:    make([]CreditEntry, 0, len(resp.Cast)),
		AsDirector: make([]CreditEntry, 0),
	}
	for _, m := range resp.Cast {
		credits.AsActor = append(credits.AsActor, CreditEntry{
			TmdbID:    m.ID,
			Title:     m.Title,
			Year:      yearOf(m.ReleaseDate),
			Character: optional(m.Character),
			Poster:    imageURL(tmdbThumbBase, m.PosterPath),
		})
	}
	for _, m := range resp.Crew {
		if m.Job != "Director" {
			continue
		}
		credits.AsDirector = append(credits.AsDirector, CreditEntry{
			TmdbID: m.ID,
			Title:  m.Title,
			Year:   yearOf(m.ReleaseDate),
			Poster: imageURL(tmdbThumbBase, m.PosterPath),
		})
	}
	return credits, nil
}

func (c *TMDBClient) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNoResults
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tmdb returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode tmdb response: %w", err)
	}
	return nil
}

func yearOf(releaseDate string) *string {
	if len(releaseDate) < 4 {
		return nil
	}
	y := releaseDate[:4]
	return &y
}

func imageURL(base, path string) *string {
	if path == "" {
		return nil
	}
	u := base + path
	return &u
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalFloat(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}

func optionalInt(n int64) *int64 {
	if n == 0 {
		return nil
	}
	return &n
}
