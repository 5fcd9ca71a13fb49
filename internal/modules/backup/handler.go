package backup

import (
	"errors"
	"net/http"

	"cinetrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/backup")
	{
		g.POST("/create", h.Create)
		g.GET("/list", h.List)
		g.POST("/restore", h.Restore)
	}
}

func (h *Handler) Create(c *gin.Context) {
	info, err := h.manager.Create()
	if err != nil {
		h.writeError(c, err, "Failed to create backup")
		return
	}

	response.Success(c, http.StatusCreated, info)
}

func (h *Handler) List(c *gin.Context) {
	infos, err := h.manager.List()
	if err != nil {
		h.writeError(c, err, "Failed to list backups")
		return
	}

	response.Success(c, http.StatusOK, infos)
}

type restoreRequest struct {
	Filename string `json:"filename" binding:"required"`
}

func (h *Handler) Restore(c *gin.Context) {
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "filename is required")
		return
	}

	if err := h.manager.Restore(req.Filename); err != nil {
		h.writeError(c, err, "Failed to restore backup")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Backup restored; restart the server to reload the database"})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUnsupported):
		response.Error(c, http.StatusBadRequest, "UNSUPPORTED", "Backups are only available for SQLite databases")
	case errors.Is(err, ErrEmptyDB):
		response.Error(c, http.StatusBadRequest, "EMPTY_DATABASE", "Database file is empty or missing")
	case errors.Is(err, ErrInvalidName):
		response.Error(c, http.StatusBadRequest, "INVALID_NAME", "Invalid backup filename")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Backup not found")
	default:
		response.Error(c, http.StatusInternalServerError, "BACKUP_FAILED", fallback)
	}
}
