package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cinetrack/internal/database"
	"cinetrack/internal/middleware"
	"cinetrack/internal/modules/admin"
	"cinetrack/internal/modules/auth"
	"cinetrack/internal/modules/backup"
	"cinetrack/internal/modules/friendship"
	"cinetrack/internal/modules/media"
	"cinetrack/internal/modules/profile"
	"cinetrack/internal/modules/suggestion"
	"cinetrack/internal/notification"
	jwtsvc "cinetrack/internal/pkg/jwt"
	"cinetrack/internal/repository"
)

const adminEmail = "admin@example.com"

type Suite struct {
	router     *gin.Engine
	db         *gorm.DB
	dispatcher *notification.Dispatcher
}

type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

func setupSuite(t *testing.T) *Suite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// unconfigured mailer makes email delivery a no-op
	dispatcher := notification.NewDispatcher(notification.NewSMTPMailer(notification.SMTPConfig{}), nil)
	t.Cleanup(dispatcher.Close)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	profileHandler := profile.NewHandler(profile.NewService(profileRepo))
	mediaHandler := media.NewHandler(media.NewService(mediaRepo))
	friendshipHandler := friendship.NewHandler(
		friendship.NewService(friendshipRepo, userRepo, mediaRepo, dispatcher))
	suggestionHandler := suggestion.NewHandler(
		suggestion.NewService(suggestionRepo, userRepo, friendshipRepo, mediaRepo, dispatcher))
	adminEmails := []string{adminEmail}
	adminHandler := admin.NewHandler(admin.NewService(statsRepo), adminEmails)

	dbFile := filepath.Join(t.TempDir(), "library.db")
	require.NoError(t, os.WriteFile(dbFile, []byte("sqlite payload"), 0o644))
	backupHandler := backup.NewHandler(backup.NewManager(dbFile, filepath.Join(t.TempDir(), "backups")))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	authHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	authHandler.RegisterProtectedRoutes(protected)
	profileHandler.RegisterRoutes(protected)
	mediaHandler.RegisterRoutes(protected)
	friendshipHandler.RegisterRoutes(protected)
	suggestionHandler.RegisterRoutes(protected)
	backupHandler.RegisterRoutes(protected)

	adminGroup := protected.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(adminEmails))
	adminHandler.RegisterRoutes(protected, adminGroup)

	return &Suite{router: r, db: db, dispatcher: dispatcher}
}

func (s *Suite) request(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, *Response) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w, &resp
}

// register creates a user and returns its id and token.
func (s *Suite) register(t *testing.T, name, email string) (int64, string) {
	w, resp := s.request(t, http.MethodPost, "/api/auth/register", gin.H{
		"name": name, "email": email, "password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var data struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.User.ID, data.Token
}

func (s *Suite) addMedia(t *testing.T, token string, body gin.H) int64 {
	w, resp := s.request(t, http.MethodPost, "/api/media", body, token)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	var m struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &m))
	return m.ID
}

func TestAuthFlow(t *testing.T) {
	s := setupSuite(t)

	_, token := s.register(t, "Roberto Silva", "roberto@example.com")

	// token round-trips through /auth/me
	w, resp := s.request(t, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), "roberto@example.com")

	// duplicate registration is a conflict
	w, resp = s.request(t, http.MethodPost, "/api/auth/register", gin.H{
		"name": "Other", "email": "ROBERTO@example.com", "password": "password456",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_EXISTS", resp.Error.Code)

	// login with the right password
	w, _ = s.request(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "roberto@example.com", "password": "password123",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// wrong password
	w, resp = s.request(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "roberto@example.com", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)

	// protected routes without a token
	w, _ = s.request(t, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMediaDuplicates(t *testing.T) {
	s := setupSuite(t)
	_, token := s.register(t, "Ana", "ana@example.com")

	s.addMedia(t, token, gin.H{"title": "The Matrix", "type": "movie", "imdb_id": "tt0133093"})

	// same imdb id again: hard conflict, nothing inserted
	w, resp := s.request(t, http.MethodPost, "/api/media", gin.H{
		"title": "Matrix Reloaded Maybe", "type": "movie", "imdb_id": "tt0133093",
	}, token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_IMDB_ID", resp.Error.Code)

	// retrying is idempotent: still one item
	w, resp = s.request(t, http.MethodGet, "/api/media", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	assert.Len(t, items, 1)
}

func TestFriendshipFlow(t *testing.T) {
	s := setupSuite(t)
	anaID, anaToken := s.register(t, "Ana", "ana@example.com")
	betoID, betoToken := s.register(t, "Beto", "beto@example.com")

	// cannot befriend yourself
	w, resp := s.request(t, http.MethodPost, "/api/friends/request", gin.H{"friendId": anaID}, anaToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SELF_REQUEST", resp.Error.Code)

	// Beto's library is off limits before friendship
	w, _ = s.request(t, http.MethodGet, fmt.Sprintf("/api/friends/%d/media", betoID), nil, anaToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp = s.request(t, http.MethodPost, "/api/friends/request", gin.H{"friendId": betoID}, anaToken)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))

	// duplicate request conflicts, in either direction
	w, _ = s.request(t, http.MethodPost, "/api/friends/request", gin.H{"friendId": anaID}, betoToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	// the requester cannot accept their own request
	w, _ = s.request(t, http.MethodPost, "/api/friends/respond",
		gin.H{"requestId": created.ID, "action": "accept"}, anaToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.request(t, http.MethodPost, "/api/friends/respond",
		gin.H{"requestId": created.ID, "action": "accept"}, betoToken)
	require.Equal(t, http.StatusOK, w.Code)

	// verification is symmetric
	for _, tc := range []struct {
		token string
		other int64
	}{{anaToken, betoID}, {betoToken, anaID}} {
		w, resp = s.request(t, http.MethodGet, fmt.Sprintf("/api/friends/verify/%d", tc.other), nil, tc.token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(resp.Data), `"areFriends":true`)
	}

	// friends list masks emails
	w, resp = s.request(t, http.MethodGet, "/api/friends", nil, anaToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), "be***@example.com")
	assert.NotContains(t, string(resp.Data), "beto@example.com")

	// now the library is visible
	s.addMedia(t, betoToken, gin.H{"title": "Okja", "type": "movie"})
	w, resp = s.request(t, http.MethodGet, fmt.Sprintf("/api/friends/%d/media", betoID), nil, anaToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), "Okja")

	// unfriending closes the door again
	w, _ = s.request(t, http.MethodDelete, fmt.Sprintf("/api/friends/%d", betoID), nil, anaToken)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.request(t, http.MethodGet, fmt.Sprintf("/api/friends/%d/media", betoID), nil, anaToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func makeFriends(t *testing.T, s *Suite, requesterToken, addresseeToken string, addresseeID int64) {
	w, resp := s.request(t, http.MethodPost, "/api/friends/request", gin.H{"friendId": addresseeID}, requesterToken)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	w, _ = s.request(t, http.MethodPost, "/api/friends/respond",
		gin.H{"requestId": created.ID, "action": "accept"}, addresseeToken)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSuggestionFlow(t *testing.T) {
	s := setupSuite(t)
	_, anaToken := s.register(t, "Ana Silva", "ana@example.com")
	betoID, betoToken := s.register(t, "Beto", "beto@example.com")
	makeFriends(t, s, anaToken, betoToken, betoID)

	mediaID := s.addMedia(t, anaToken, gin.H{
		"title": "The Matrix", "type": "movie", "imdb_id": "tt0133093", "year": "1999",
	})

	w, resp := s.request(t, http.MethodPost, "/api/suggestions/send", gin.H{
		"receiverId": betoID, "mediaId": mediaID, "message": "clássico",
	}, anaToken)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	var sug struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &sug))

	// suggesting the same item again while pending conflicts
	w, resp = s.request(t, http.MethodPost, "/api/suggestions/send", gin.H{
		"receiverId": betoID, "mediaId": mediaID,
	}, anaToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_SUGGESTED", resp.Error.Code)

	// receiver sees it with a badge count
	w, resp = s.request(t, http.MethodGet, "/api/suggestions/count", nil, betoToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"count":1`)

	// only the receiver can accept
	w, _ = s.request(t, http.MethodPut, fmt.Sprintf("/api/suggestions/%d/respond", sug.ID),
		gin.H{"action": "accept"}, anaToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp = s.request(t, http.MethodPut, fmt.Sprintf("/api/suggestions/%d/respond", sug.ID),
		gin.H{"action": "accept"}, betoToken)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	assert.Contains(t, string(resp.Data), "Sugerido por Ana Silva")

	// the copy landed in Beto's library, unwatched and unrated
	w, resp = s.request(t, http.MethodGet, "/api/media", nil, betoToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), "The Matrix")
	assert.Contains(t, string(resp.Data), `"status":"quero_ver"`)
}

func TestSuggestion_EquivalentAlreadyOwned(t *testing.T) {
	s := setupSuite(t)
	_, anaToken := s.register(t, "Ana", "ana@example.com")
	betoID, betoToken := s.register(t, "Beto", "beto@example.com")
	makeFriends(t, s, anaToken, betoToken, betoID)

	mediaID := s.addMedia(t, anaToken, gin.H{"title": "Dune", "type": "movie", "imdb_id": "tt1160419"})
	s.addMedia(t, betoToken, gin.H{"title": "Duna", "type": "movie", "imdb_id": "tt1160419"})

	w, resp := s.request(t, http.MethodPost, "/api/suggestions/send", gin.H{
		"receiverId": betoID, "mediaId": mediaID,
	}, anaToken)
	require.Equal(t, http.StatusCreated, w.Code)
	var sug struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &sug))

	// accepting resolves as rejected because an equivalent item exists
	w, resp = s.request(t, http.MethodPut, fmt.Sprintf("/api/suggestions/%d/respond", sug.ID),
		gin.H{"action": "accept"}, betoToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_IN_COLLECTION", resp.Error.Code)

	// the suggestion is out of pending for good
	w, _ = s.request(t, http.MethodPut, fmt.Sprintf("/api/suggestions/%d/respond", sug.ID),
		gin.H{"action": "accept"}, betoToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestion_RequiresFriendship(t *testing.T) {
	s := setupSuite(t)
	_, anaToken := s.register(t, "Ana", "ana@example.com")
	betoID, _ := s.register(t, "Beto", "beto@example.com")

	mediaID := s.addMedia(t, anaToken, gin.H{"title": "Okja", "type": "movie"})

	w, resp := s.request(t, http.MethodPost, "/api/suggestions/send", gin.H{
		"receiverId": betoID, "mediaId": mediaID,
	}, anaToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
}

func TestAdminAccess(t *testing.T) {
	s := setupSuite(t)
	_, userToken := s.register(t, "Regular", "user@example.com")
	_, adminToken := s.register(t, "Root", adminEmail)

	// allow-list check endpoint answers for everyone
	w, resp := s.request(t, http.MethodGet, "/api/admin/check", nil, userToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"isAdmin":false`)

	w, resp = s.request(t, http.MethodGet, "/api/admin/check", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"isAdmin":true`)

	// stats are gated
	w, _ = s.request(t, http.MethodGet, "/api/admin/stats", nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	s.addMedia(t, adminToken, gin.H{"title": "Pixote", "type": "movie"})
	w, resp = s.request(t, http.MethodGet, "/api/admin/stats", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"total_users":2`)
	assert.Contains(t, string(resp.Data), `"total_media":1`)
}

func TestBackupEndpoints(t *testing.T) {
	s := setupSuite(t)
	_, token := s.register(t, "Regular", "user@example.com")

	// backups live under /api/backup behind plain auth, not the admin group
	w, _ := s.request(t, http.MethodGet, "/api/backup/list", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := s.request(t, http.MethodPost, "/api/backup/create", nil, token)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	var created struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.True(t, strings.HasPrefix(created.Name, "backup_"), created.Name)

	w, resp = s.request(t, http.MethodGet, "/api/backup/list", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), created.Name)
}

func TestProfileRoundTrip(t *testing.T) {
	s := setupSuite(t)
	_, token := s.register(t, "Ana", "ana@example.com")

	// registration already created an empty profile
	w, _ := s.request(t, http.MethodGet, "/api/profile", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := s.request(t, http.MethodPut, "/api/profile", gin.H{
		"favorite_genres": "Drama, Suspense",
		"bio":             "Cinéfila de carteirinha",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), "Drama, Suspense")

	w, resp = s.request(t, http.MethodGet, "/api/profile", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), "Cinéfila de carteirinha")
}
