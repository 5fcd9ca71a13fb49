package media

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinetrack/internal/database"
	"cinetrack/internal/domain"
	"cinetrack/internal/repository"
)

func setupService(t *testing.T) *Service {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(repository.NewMediaRepository(db))
}

func strPtr(s string) *string { return &s }

func TestService_Create_DefaultStatus(t *testing.T) {
	service := setupService(t)

	m, err := service.Create(context.Background(), 1, CreateMediaRequest{
		Title: "Cidade de Deus",
		Type:  "movie",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWantToWatch, m.Status)
}

func TestService_Create_HonorsValidStatus(t *testing.T) {
	service := setupService(t)

	m, err := service.Create(context.Background(), 1, CreateMediaRequest{
		Title:  "Tropa de Elite",
		Type:   "movie",
		Status: strPtr("ja_vi"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWatched, m.Status)

	// unknown status silently falls back to the default
	m2, err := service.Create(context.Background(), 1, CreateMediaRequest{
		Title:  "Central do Brasil",
		Type:   "movie",
		Status: strPtr("nonsense"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWantToWatch, m2.Status)
}

func TestService_Create_DuplicateByImdbID(t *testing.T) {
	service := setupService(t)

	first, err := service.Create(context.Background(), 1, CreateMediaRequest{
		Title:  "The Matrix",
		Type:   "movie",
		ImdbID: strPtr("tt0133093"),
	})
	require.NoError(t, err)

	// different title, same imdb id: the strongest tier wins
	_, err = service.Create(context.Background(), 1, CreateMediaRequest{
		Title:  "Matrix (1999)",
		Type:   "movie",
		ImdbID: strPtr("tt0133093"),
	})
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "imdb_id", dup.Tier)
	assert.Equal(t, first.ID, dup.Existing.ID)
}

func TestService_Create_DuplicateByTitleYear(t *testing.T) {
	service := setupService(t)

	_, err := service.Create(context.Background(), 1, CreateMediaRequest{
		Title: "O Auto da Compadecida",
		Type:  "movie",
		Year:  strPtr("2000"),
	})
	require.NoError(t, err)

	// case-insensitive title plus matching year
	_, err = service.Create(context.Background(), 1, CreateMediaRequest{
		Title: "o auto da compadecida",
		Type:  "movie",
		Year:  strPtr("2000"),
	})
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "title_year", dup.Tier)
}

func TestService_Create_DuplicateByTitleOnly(t *testing.T) {
	service := setupService(t)

	_, err := service.Create(context.Background(), 1, CreateMediaRequest{
		Title: "Dune",
		Type:  "movie",
		Year:  strPtr("1984"),
	})
	require.NoError(t, err)

	// no year on the new item, so only the soft title tier can match
	_, err = service.Create(context.Background(), 1, CreateMediaRequest{
		Title: "Dune",
		Type:  "movie",
	})
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "title", dup.Tier)
}

func TestService_Create_NoCrossUserDuplicate(t *testing.T) {
	service := setupService(t)

	_, err := service.Create(context.Background(), 1, CreateMediaRequest{
		Title: "Parasite", Type: "movie", ImdbID: strPtr("tt6751668"),
	})
	require.NoError(t, err)

	// duplicate detection is per library
	_, err = service.Create(context.Background(), 2, CreateMediaRequest{
		Title: "Parasite", Type: "movie", ImdbID: strPtr("tt6751668"),
	})
	assert.NoError(t, err)
}

func TestService_Update_Partial(t *testing.T) {
	service := setupService(t)

	m, err := service.Create(context.Background(), 1, CreateMediaRequest{
		Title: "Bacurau", Type: "movie", Genre: strPtr("Thriller"),
	})
	require.NoError(t, err)

	four := 4
	updated, err := service.Update(context.Background(), m.ID, 1, UpdateMediaRequest{
		Status: strPtr("ja_vi"),
		Rating: &four,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWatched, updated.Status)
	assert.Equal(t, 4, *updated.Rating)
	// untouched fields survive the partial update
	assert.Equal(t, "Bacurau", updated.Title)
	assert.Equal(t, "Thriller", *updated.Genre)
}

func TestService_Update_WrongOwner(t *testing.T) {
	service := setupService(t)

	m, err := service.Create(context.Background(), 1, CreateMediaRequest{
		Title: "Aquarius", Type: "movie",
	})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), m.ID, 2, UpdateMediaRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	service := setupService(t)

	m, err := service.Create(context.Background(), 1, CreateMediaRequest{
		Title: "Pixote", Type: "movie",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), m.ID, 1))
	assert.ErrorIs(t, service.Delete(context.Background(), m.ID, 1), ErrNotFound)
}

func TestService_SearchLocal(t *testing.T) {
	service := setupService(t)

	_, err := service.Create(context.Background(), 1, CreateMediaRequest{
		Title: "The Godfather", Type: "movie", Actors: strPtr("Al Pacino, Marlon Brando"),
	})
	require.NoError(t, err)

	byTitle, err := service.SearchLocal(context.Background(), 1, "godfather")
	require.NoError(t, err)
	assert.Len(t, byTitle, 1)

	byActor, err := service.SearchLocal(context.Background(), 1, "pacino")
	require.NoError(t, err)
	assert.Len(t, byActor, 1)

	other, err := service.SearchLocal(context.Background(), 2, "godfather")
	require.NoError(t, err)
	assert.Empty(t, other)
}
