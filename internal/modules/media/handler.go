package media

import (
	"errors"
	"net/http"
	"strconv"

	"cinetrack/internal/pkg/response"
	"cinetrack/internal/pkg/validator"
	"cinetrack/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/media")
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/search/local", h.SearchLocal)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	items, err := h.service.List(c.Request.Context(), userID, repository.MediaFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Genre:  c.Query("genre"),
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load media")
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid media ID")
		return
	}

	m, err := h.service.Get(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Media not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load media")
		return
	}

	response.Success(c, http.StatusOK, m)
}

func (h *Handler) SearchLocal(c *gin.Context) {
	userID := c.GetInt64("user_id")

	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Search parameter (q) is required")
		return
	}

	items, err := h.service.SearchLocal(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "SEARCH_FAILED", "Failed to search media")
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Title and type are required")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid media fields", fieldErrs)
		return
	}

	m, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		var dup *DuplicateError
		if errors.As(err, &dup) {
			h.writeDuplicate(c, dup)
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to add media")
		return
	}

	response.Success(c, http.StatusCreated, m)
}

// writeDuplicate maps the matched tier onto its own code. The title-only
// match is the soft tier: same status, softer message, and the existing row
// so the client can offer "open it instead".
func (h *Handler) writeDuplicate(c *gin.Context, dup *DuplicateError) {
	switch dup.Tier {
	case "imdb_id":
		response.ErrorWithDetails(c, http.StatusConflict, "DUPLICATE_IMDB_ID",
			"This title is already in your collection", gin.H{"existing_id": dup.Existing.ID})
	case "title_year":
		response.ErrorWithDetails(c, http.StatusConflict, "DUPLICATE_TITLE_YEAR",
			"A title with the same name and year is already in your collection", gin.H{"existing_id": dup.Existing.ID})
	default:
		response.ErrorWithDetails(c, http.StatusConflict, "DUPLICATE_TITLE",
			"A title with the same name is already in your collection; it may be a different release",
			gin.H{"existing": dup.Existing, "warning": true})
	}
}

func (h *Handler) Update(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid media ID")
		return
	}

	var req UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid media fields", fieldErrs)
		return
	}

	m, err := h.service.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Media not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update media")
		return
	}

	response.Success(c, http.StatusOK, m)
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid media ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Media not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete media")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Media removed"})
}
