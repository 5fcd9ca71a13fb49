package friendship

import (
	"errors"
	"net/http"
	"strconv"

	"cinetrack/internal/pkg/response"
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
	g := protected.Group("/friends")
	{
		g.GET("", h.List)
		g.POST("/request", h.SendRequest)
		g.GET("/requests", h.ListRequests)
		g.POST("/respond", h.Respond)
		g.GET("/search", h.Search)
		g.GET("/verify/:friendId", h.Verify)
		g.GET("/:friendId/media", h.FriendMedia)
		g.GET("/:friendId/media/:mediaId", h.FriendMediaItem)
		g.DELETE("/:friendId", h.Remove)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	friends, err := h.service.ListFriends(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load friends")
		return
	}

	response.Success(c, http.StatusOK, friends)
}

func (h *Handler) SendRequest(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req SendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "friendId is required")
		return
	}

	f, err := h.service.SendRequest(c.Request.Context(), userID, req.FriendID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfRequest):
			response.Error(c, http.StatusBadRequest, "SELF_REQUEST", "You cannot send a friend request to yourself")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, ErrAlreadyFriends):
			response.Error(c, http.StatusConflict, "ALREADY_FRIENDS", "You are already friends with this user")
		case errors.Is(err, ErrRequestPending):
			response.Error(c, http.StatusConflict, "REQUEST_PENDING", "A friend request is already pending")
		default:
			response.Error(c, http.StatusInternalServerError, "REQUEST_FAILED", "Failed to send friend request")
		}
		return
	}

	response.Success(c, http.StatusCreated, f)
}

func (h *Handler) ListRequests(c *gin.Context) {
	userID := c.GetInt64("user_id")

	reqs, err := h.service.ListRequests(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load friend requests")
		return
	}

	response.Success(c, http.StatusOK, reqs)
}

func (h *Handler) Respond(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "requestId and an action of accept or reject are required")
		return
	}

	f, err := h.service.Respond(c.Request.Context(), req.RequestID, userID, req.Action)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Friend request not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "RESPOND_FAILED", "Failed to respond to friend request")
		return
	}

	response.Success(c, http.StatusOK, f)
}

func (h *Handler) Search(c *gin.Context) {
	userID := c.GetInt64("user_id")

	q := c.Query("q")
	if len(q) < 2 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Search term must have at least 2 characters")
		return
	}

	results, err := h.service.SearchUsers(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "SEARCH_FAILED", "Failed to search users")
		return
	}

	response.Success(c, http.StatusOK, results)
}

func (h *Handler) Verify(c *gin.Context) {
	userID := c.GetInt64("user_id")

	friendID, err := strconv.ParseInt(c.Param("friendId"), 10, 64)
	if err != nil || friendID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	ok, err := h.service.AreFriends(c.Request.Context(), userID, friendID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to verify friendship")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"areFriends": ok})
}

func (h *Handler) FriendMedia(c *gin.Context) {
	userID := c.GetInt64("user_id")

	friendID, err := strconv.ParseInt(c.Param("friendId"), 10, 64)
	if err != nil || friendID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	friend, items, err := h.service.FriendMedia(c.Request.Context(), userID, friendID, repository.MediaFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Genre:  c.Query("genre"),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFriends):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only view the library of your friends")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load friend's media")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"friend": friend, "media": items})
}

func (h *Handler) FriendMediaItem(c *gin.Context) {
	userID := c.GetInt64("user_id")

	friendID, err := strconv.ParseInt(c.Param("friendId"), 10, 64)
	if err != nil || friendID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}
	mediaID, err := strconv.ParseInt(c.Param("mediaId"), 10, 64)
	if err != nil || mediaID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid media ID")
		return
	}

	m, err := h.service.FriendMediaItem(c.Request.Context(), userID, friendID, mediaID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFriends):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only view the library of your friends")
		case errors.Is(err, ErrMediaNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Media not found")
		default:
			response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load media")
		}
		return
	}

	response.Success(c, http.StatusOK, m)
}

func (h *Handler) Remove(c *gin.Context) {
	userID := c.GetInt64("user_id")

	friendID, err := strconv.ParseInt(c.Param("friendId"), 10, 64)
	if err != nil || friendID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, friendID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Friendship not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to remove friend")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Friend removed"})
}
