package domain

// Profile holds the free-text taste fields a user fills in about themselves.
// One row per user, created empty at registration (or lazily on first access
// for accounts that predate the profiles table).
type Profile struct {
	ID                int64   `gorm:"column:id;primaryKey" json:"id"`
	UserID            int64   `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	FavoriteGenres    *string `gorm:"column:favorite_genres" json:"favorite_genres"`
	FavoriteMovies    *string `gorm:"column:favorite_movies" json:"favorite_movies"`
	FavoriteDirectors *string `gorm:"column:favorite_directors" json:"favorite_directors"`
	FavoriteActors    *string `gorm:"column:favorite_actors" json:"favorite_actors"`
	Bio               *string `gorm:"column:bio" json:"bio"`
}

func (Profile) TableName() string { return "user_profiles" }
