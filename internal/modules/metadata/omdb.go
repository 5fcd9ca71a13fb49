package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

const DefaultOMDbBaseURL = "http://www.omdbapi.com/"

// OMDbClient proxies the OMDb REST API. One page holds 10 results; Search
// transparently fetches a second page when more exist.
type OMDbClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewOMDbClient(apiKey, baseURL string) *OMDbClient {
	if baseURL == "" {
		baseURL = DefaultOMDbBaseURL
	}
	return &OMDbClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *OMDbClient) Configured() bool {
	return c.apiKey != "" && c.apiKey != "your_api_key_here"
}

type OMDbSearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

type omdbSearchResponse struct {
	Search       []OMDbSearchItem `json:"Search"`
	TotalResults string           `json:"totalResults"`
	Response     string           `json:"Response"`
	Error        string           `json:"Error"`
}

type SearchResult struct {
	Results      []OMDbSearchItem `json:"results"`
	TotalResults int              `json:"totalResults"`
}

// Search queries OMDb by title substring. A failed second page is not an
// error; the first page is returned alone.
func (c *OMDbClient) Search(ctx context.Context, title, mediaType, year string) (*SearchResult, error) {
	if !c.Configured() {
		return nil, ErrKeyNotConfigured
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("s", title)
	if mediaType != "" {
		params.Set("type", mediaType)
	}
	if year != "" {
		params.Set("y", year)
	}

	params.Set("page", "1")
	var page1 omdbSearchResponse
	if err := c.get(ctx, params, &page1); err != nil {
		return nil, err
	}
	if page1.Response == "False" {
		return nil, fmt.Errorf("%w: %s", ErrNoResults, page1.Error)
	}

	total, _ := strconv.Atoi(page1.TotalResults)
	results := page1.Search

	if total > 10 {
		params.Set("page", "2")
		var page2 omdbSearchResponse
		if err := c.get(ctx, params, &page2); err == nil && page2.Response == "True" {
			results = append(results, page2.Search...)
		}
	}

	return &SearchResult{Results: results, TotalResults: total}, nil
}

// omdbDetail is the raw provider shape; "N/A" stands in for absent fields.
type omdbDetail struct {
	Title      string `json:"Title"`
	Type       string `json:"Type"`
	Genre      string `json:"Genre"`
	ImdbID     string `json:"imdbID"`
	ImdbRating string `json:"imdbRating"`
	Poster     string `json:"Poster"`
	Plot       string `json:"Plot"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Runtime    string `json:"Runtime"`
	Country    string `json:"Country"`
	Language   string `json:"Language"`
	Awards     string `json:"Awards"`
	Metascore  string `json:"Metascore"`
	ImdbVotes  string `json:"imdbVotes"`
	Rated      string `json:"Rated"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// MediaDetails is the normalized shape clients prefill the add-media form
// with. Field names line up with the media table columns.
type MediaDetails struct {
	Title      string  `json:"title"`
	Type       string  `json:"type"`
	Genre      *string `json:"genre"`
	ImdbID     string  `json:"imdb_id"`
	ImdbRating *string `json:"imdb_rating"`
	PosterURL  *string `json:"poster_url"`
	Plot       *string `json:"plot"`
	Year       *string `json:"year"`
	Director   *string `json:"director"`
	Actors     *string `json:"actors"`
	Runtime    *string `json:"runtime"`
	Country    *string `json:"country"`
	Language   *string `json:"language"`
	Awards     *string `json:"awards"`
	Metascore  *string `json:"metascore"`
	ImdbVotes  *string `json:"imdb_votes"`
	Rated      *string `json:"rated"`
}

// ByID fetches full details (complete plot) for one IMDb id.
func (c *OMDbClient) ByID(ctx context.Context, imdbID string) (*MediaDetails, error) {
	if !c.Configured() {
		return nil, ErrKeyNotConfigured
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", imdbID)
	params.Set("plot", "full")

	return c.detail(ctx, params)
}

// ByTitle fetches details for an exact title, optionally narrowed by year
// and type.
func (c *OMDbClient) ByTitle(ctx context.Context, title, year, mediaType string) (*MediaDetails, error) {
	if !c.Configured() {
		return nil, ErrKeyNotConfigured
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	params.Set("plot", "full")
	if year != "" {
		params.Set("y", year)
	}
	if mediaType != "" {
		params.Set("type", mediaType)
	}

	return c.detail(ctx, params)
}

func (c *OMDbClient) detail(ctx context.Context, params url.Values) (*MediaDetails, error) {
	var raw omdbDetail
	if err := c.get(ctx, params, &raw); err != nil {
		return nil, err
	}
	if raw.Response == "False" {
		return nil, fmt.Errorf("%w: %s", ErrNoResults, raw.Error)
	}

	mediaType := "series"
	if raw.Type == "movie" {
		mediaType = "movie"
	}

	return &MediaDetails{
		Title:      raw.Title,
		Type:       mediaType,
		Genre:      notNA(raw.Genre),
		ImdbID:     raw.ImdbID,
		ImdbRating: notNA(raw.ImdbRating),
		PosterURL:  notNA(raw.Poster),
		Plot:       notNA(raw.Plot),
		Year:       notNA(CleanYear(raw.Year)),
		Director:   notNA(raw.Director),
		Actors:     notNA(raw.Actors),
		Runtime:    notNA(raw.Runtime),
		Country:    notNA(raw.Country),
		Language:   notNA(raw.Language),
		Awards:     notNA(raw.Awards),
		Metascore:  notNA(raw.Metascore),
		ImdbVotes:  notNA(raw.ImdbVotes),
		Rated:      notNA(raw.Rated),
	}, nil
}

func (c *OMDbClient) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("omdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("omdb returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode omdb response: %w", err)
	}
	return nil
}

var yearRe = regexp.MustCompile(`\d{4}`)

// CleanYear reduces OMDb's year spellings ("2008-2013", "2021-") to the
// first four-digit run. Strings with no year pass through untouched.
func CleanYear(s string) string {
	if s == "" {
		return s
	}
	if m := yearRe.FindString(s); m != "" {
		return m
	}
	return s
}

func notNA(s string) *string {
	if s == "" || s == "N/A" {
		return nil
	}
	return &s
}
