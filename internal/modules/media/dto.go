package media

import "time"

type CreateMediaRequest struct {
	Title       string     `json:"title" binding:"required"`
	Type        string     `json:"type" binding:"required,oneof=movie series"`
	Genre       *string    `json:"genre"`
	Status      *string    `json:"status"`
	Rating      *int       `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Notes       *string    `json:"notes"`
	DateWatched *time.Time `json:"date_watched"`
	ImdbID      *string    `json:"imdb_id"`
	ImdbRating  *string    `json:"imdb_rating"`
	PosterURL   *string    `json:"poster_url"`
	Plot        *string    `json:"plot"`
	Year        *string    `json:"year"`
	Director    *string    `json:"director"`
	Actors      *string    `json:"actors"`
	Runtime     *string    `json:"runtime"`
	Country     *string    `json:"country"`
}

// UpdateMediaRequest uses pointers throughout: absent fields keep their
// stored value, matching the partial-update contract of the API.
type UpdateMediaRequest struct {
	Title       *string    `json:"title"`
	Type        *string    `json:"type" validate:"omitempty,oneof=movie series"`
	Genre       *string    `json:"genre"`
	Status      *string    `json:"status"`
	Rating      *int       `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Notes       *string    `json:"notes"`
	DateWatched *time.Time `json:"date_watched"`
	ImdbID      *string    `json:"imdb_id"`
	ImdbRating  *string    `json:"imdb_rating"`
	PosterURL   *string    `json:"poster_url"`
	Plot        *string    `json:"plot"`
	Year        *string    `json:"year"`
	Director    *string    `json:"director"`
	Actors      *string    `json:"actors"`
	Runtime     *string    `json:"runtime"`
	Country     *string    `json:"country"`
}
