package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanYear(t *testing.T) {
	cases := map[string]string{
		"1999":      "1999",
		"2008-2013": "2008",
		"2021-":     "2021",
		"":          "",
		"unknown":   "unknown",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanYear(in), "input %q", in)
	}
}

func TestOMDbClient_Search_MergesSecondPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		fmt.Fprintf(w, `{"Search":[{"Title":"Result %s","Year":"1999","imdbID":"tt%s","Type":"movie","Poster":"N/A"}],"totalResults":"15","Response":"True"}`, page, page)
	}))
	defer srv.Close()

	client := NewOMDbClient("testkey", srv.URL+"/")

	result, err := client.Search(context.Background(), "matrix", "", "")
	require.NoError(t, err)
	assert.Equal(t, 15, result.TotalResults)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "Result 1", result.Results[0].Title)
	assert.Equal(t, "Result 2", result.Results[1].Title)
}

func TestOMDbClient_Search_SecondPageFailureKeepsFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"Search":[{"Title":"Only Page One","Year":"1999","imdbID":"tt1","Type":"movie"}],"totalResults":"20","Response":"True"}`)
	}))
	defer srv.Close()

	client := NewOMDbClient("testkey", srv.URL+"/")

	result, err := client.Search(context.Background(), "matrix", "", "")
	require.NoError(t, err)
	assert.Len(t, result.Results, 1)
}

func TestOMDbClient_Search_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Response":"False","Error":"Movie not found!"}`)
	}))
	defer srv.Close()

	client := NewOMDbClient("testkey", srv.URL+"/")

	_, err := client.Search(context.Background(), "zzzz", "", "")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestOMDbClient_ByID_NormalizesNA(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "full", r.URL.Query().Get("plot"))
		assert.Equal(t, "tt0133093", r.URL.Query().Get("i"))
		fmt.Fprint(w, `{"Title":"The Matrix","Type":"movie","Genre":"Action, Sci-Fi",
			"imdbID":"tt0133093","imdbRating":"8.7","Poster":"N/A","Plot":"A hacker...",
			"Year":"1999","Director":"N/A","Actors":"Keanu Reeves","Runtime":"136 min",
			"Country":"United States","Response":"True"}`)
	}))
	defer srv.Close()

	client := NewOMDbClient("testkey", srv.URL+"/")

	details, err := client.ByID(context.Background(), "tt0133093")
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", details.Title)
	assert.Equal(t, "movie", details.Type)
	assert.Nil(t, details.PosterURL, `"N/A" must become null`)
	assert.Nil(t, details.Director)
	assert.Equal(t, "Keanu Reeves", *details.Actors)
	assert.Equal(t, "1999", *details.Year)
}

func TestOMDbClient_ByID_CleansYearRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Title":"Breaking Bad","Type":"series","Year":"2008-2013","imdbID":"tt0903747","Response":"True"}`)
	}))
	defer srv.Close()

	client := NewOMDbClient("testkey", srv.URL+"/")

	details, err := client.ByID(context.Background(), "tt0903747")
	require.NoError(t, err)
	assert.Equal(t, "series", details.Type)
	assert.Equal(t, "2008", *details.Year)
}

func TestOMDbClient_Unconfigured(t *testing.T) {
	client := NewOMDbClient("", "")
	_, err := client.Search(context.Background(), "matrix", "", "")
	assert.ErrorIs(t, err, ErrKeyNotConfigured)

	client = NewOMDbClient("your_api_key_here", "")
	_, err = client.ByID(context.Background(), "tt1")
	assert.ErrorIs(t, err, ErrKeyNotConfigured)
}
