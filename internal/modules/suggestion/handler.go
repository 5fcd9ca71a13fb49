package suggestion

import (
	"errors"
	"net/http"
	"strconv"

	"cinetrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/suggestions")
	{
		g.POST("/send", h.Send)
		g.GET("/received", h.ListReceived)
		g.GET("/sent", h.ListSent)
		g.GET("/count", h.Count)
		g.PUT("/:id/respond", h.Respond)
		g.DELETE("/:id", h.Cancel)
	}
}

func (h *Handler) Send(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req SendSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "receiverId and mediaId are required")
		return
	}

	sug, err := h.service.Send(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfSuggestion):
			response.Error(c, http.StatusBadRequest, "SELF_SUGGESTION", "You cannot suggest media to yourself")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, ErrNotFriends):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only suggest media to your friends")
		case errors.Is(err, ErrMediaNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Media not found in your collection")
		case errors.Is(err, ErrAlreadySuggested):
			response.Error(c, http.StatusConflict, "ALREADY_SUGGESTED", "You already suggested this media to this user")
		default:
			response.Error(c, http.StatusInternalServerError, "SUGGEST_FAILED", "Failed to send suggestion")
		}
		return
	}

	response.Success(c, http.StatusCreated, sug)
}

func (h *Handler) ListReceived(c *gin.Context) {
	userID := c.GetInt64("user_id")

	rows, err := h.service.ListReceived(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load suggestions")
		return
	}

	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) ListSent(c *gin.Context) {
	userID := c.GetInt64("user_id")

	rows, err := h.service.ListSent(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load suggestions")
		return
	}

	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) Count(c *gin.Context) {
	userID := c.GetInt64("user_id")

	count, err := h.service.CountPending(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to count suggestions")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": count})
}

func (h *Handler) Respond(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid suggestion ID")
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "action must be accept or reject")
		return
	}

	copied, err := h.service.Respond(c.Request.Context(), id, userID, req.Action)
	if err != nil {
		var inCollection *AlreadyInCollectionError
		switch {
		case errors.As(err, &inCollection):
			response.ErrorWithDetails(c, http.StatusConflict, "ALREADY_IN_COLLECTION",
				"This title is already in your collection; the suggestion was rejected",
				gin.H{"existing_id": inCollection.Existing.ID})
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Suggestion not found")
		case errors.Is(err, ErrNotReceiver):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the receiver can respond to a suggestion")
		case errors.Is(err, ErrAlreadyResponded):
			response.Error(c, http.StatusBadRequest, "ALREADY_RESPONDED", "This suggestion was already responded to")
		case errors.Is(err, ErrMediaNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "The suggested media no longer exists")
		default:
			response.Error(c, http.StatusInternalServerError, "RESPOND_FAILED", "Failed to respond to suggestion")
		}
		return
	}

	if copied != nil {
		response.Success(c, http.StatusOK, gin.H{"message": "Suggestion accepted", "media": copied})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Suggestion rejected"})
}

func (h *Handler) Cancel(c *gin.Context) {
	userID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid suggestion ID")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Suggestion not found")
		case errors.Is(err, ErrNotSender):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the sender can cancel a suggestion")
		case errors.Is(err, ErrAlreadyResponded):
			response.Error(c, http.StatusBadRequest, "ALREADY_RESPONDED", "This suggestion was already responded to")
		default:
			response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to cancel suggestion")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Suggestion cancelled"})
}
