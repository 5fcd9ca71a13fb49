package metadata

import (
	"errors"
	"net/http"
	"strconv"

	"cinetrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	omdb *OMDbClient
	tmdb *TMDBClient
}

func NewHandler(omdb *OMDbClient, tmdb *TMDBClient) *Handler {
	return &Handler{omdb: omdb, tmdb: tmdb}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	o := protected.Group("/omdb")
	{
		o.GET("/search", h.OMDbSearch)
		o.GET("/title/:title", h.OMDbByTitle)
		o.GET("/:imdbId", h.OMDbByID)
	}

	t := protected.Group("/tmdb")
	{
		t.GET("/search/movie", h.TMDBSearchMovie)
		t.GET("/search/person", h.TMDBSearchPerson)
		t.GET("/movie/:tmdbId", h.TMDBMovieDetail)
		t.GET("/person/:personId/movies", h.TMDBPersonCredits)
	}
}

func (h *Handler) OMDbSearch(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "title parameter is required")
		return
	}

	result, err := h.omdb.Search(c.Request.Context(), title, c.Query("type"), c.Query("year"))
	if err != nil {
		h.writeProviderError(c, err, "Failed to search OMDb")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) OMDbByID(c *gin.Context) {
	details, err := h.omdb.ByID(c.Request.Context(), c.Param("imdbId"))
	if err != nil {
		h.writeProviderError(c, err, "Failed to load details from OMDb")
		return
	}

	response.Success(c, http.StatusOK, details)
}

func (h *Handler) OMDbByTitle(c *gin.Context) {
	details, err := h.omdb.ByTitle(c.Request.Context(), c.Param("title"), c.Query("year"), c.Query("type"))
	if err != nil {
		h.writeProviderError(c, err, "Failed to load details from OMDb")
		return
	}

	response.Success(c, http.StatusOK, details)
}

func (h *Handler) TMDBSearchMovie(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "query parameter is required")
		return
	}

	results, err := h.tmdb.SearchMovie(c.Request.Context(), query, c.Query("language"))
	if err != nil {
		h.writeProviderError(c, err, "Failed to search TMDB")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (h *Handler) TMDBSearchPerson(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "query parameter is required")
		return
	}

	results, err := h.tmdb.SearchPerson(c.Request.Context(), query, c.Query("language"))
	if err != nil {
		h.writeProviderError(c, err, "Failed to search TMDB")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (h *Handler) TMDBMovieDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("tmdbId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid TMDB ID")
		return
	}

	detail, err := h.tmdb.MovieDetail(c.Request.Context(), id, c.Query("language"))
	if err != nil {
		h.writeProviderError(c, err, "Failed to load movie details from TMDB")
		return
	}

	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) TMDBPersonCredits(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("personId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid person ID")
		return
	}

	credits, err := h.tmdb.PersonMovieCredits(c.Request.Context(), id, c.Query("language"))
	if err != nil {
		h.writeProviderError(c, err, "Failed to load person credits from TMDB")
		return
	}

	response.Success(c, http.StatusOK, credits)
}

func (h *Handler) writeProviderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrKeyNotConfigured):
		response.Error(c, http.StatusInternalServerError, "NOT_CONFIGURED",
			"Metadata provider API key is not configured")
	case errors.Is(err, ErrNoResults):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "No results found")
	default:
		response.Error(c, http.StatusBadGateway, "PROVIDER_ERROR", fallback)
	}
}
