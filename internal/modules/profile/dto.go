package profile

type UpdateProfileRequest struct {
	FavoriteGenres    *string `json:"favorite_genres" validate:"omitempty,max=500"`
	FavoriteMovies    *string `json:"favorite_movies" validate:"omitempty,max=500"`
	FavoriteDirectors *string `json:"favorite_directors" validate:"omitempty,max=500"`
	FavoriteActors    *string `json:"favorite_actors" validate:"omitempty,max=500"`
	Bio               *string `json:"bio" validate:"omitempty,max=2000"`
}
