package admin

import (
	"net/http"
	"strings"

	"cinetrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service     *Service
	adminEmails map[string]struct{}
}

func NewHandler(service *Service, adminEmails []string) *Handler {
	allowed := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		allowed[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &Handler{service: service, adminEmails: allowed}
}

// RegisterRoutes splits the surface: /admin/check answers for any logged-in
// user, /admin/stats sits behind the admin allow-list middleware.
func (h *Handler) RegisterRoutes(protected, admin *gin.RouterGroup) {
	protected.GET("/admin/check", h.Check)
	admin.GET("/stats", h.Stats)
}

func (h *Handler) Check(c *gin.Context) {
	email := strings.ToLower(c.GetString("email"))
	_, isAdmin := h.adminEmails[email]
	response.Success(c, http.StatusOK, gin.H{"isAdmin": isAdmin})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load statistics")
		return
	}

	response.Success(c, http.StatusOK, stats)
}
