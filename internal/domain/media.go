package domain

import "time"

type MediaType string

const (
	TypeMovie  MediaType = "movie"
	TypeSeries MediaType = "series"
)

func (t MediaType) Valid() bool {
	return t == TypeMovie || t == TypeSeries
}

// MediaStatus keeps the original Portuguese values: they are part of the wire
// contract with existing clients and stored rows.
type MediaStatus string

const (
	StatusWantToWatch MediaStatus = "quero_ver"
	StatusWatching    MediaStatus = "assistindo"
	StatusRewatch     MediaStatus = "rever"
	StatusWatched     MediaStatus = "ja_vi"
)

func (s MediaStatus) Valid() bool {
	switch s {
	case StatusWantToWatch, StatusWatching, StatusRewatch, StatusWatched:
		return true
	}
	return false
}

// Media is one tracked movie or series in a user's library. External metadata
// fields come from OMDb/TMDB and are optional.
type Media struct {
	ID          int64       `gorm:"column:id;primaryKey" json:"id"`
	UserID      int64       `gorm:"column:user_id;index" json:"user_id"`
	Title       string      `gorm:"column:title" json:"title"`
	Type        MediaType   `gorm:"column:type" json:"type"`
	Genre       *string     `gorm:"column:genre" json:"genre"`
	Status      MediaStatus `gorm:"column:status;default:quero_ver" json:"status"`
	Rating      *int        `gorm:"column:rating" json:"rating"`
	Notes       *string     `gorm:"column:notes" json:"notes"`
	DateAdded   time.Time   `gorm:"column:date_added;autoCreateTime" json:"date_added"`
	DateWatched *time.Time  `gorm:"column:date_watched" json:"date_watched"`
	ImdbID      *string     `gorm:"column:imdb_id" json:"imdb_id"`
	ImdbRating  *string     `gorm:"column:imdb_rating" json:"imdb_rating"`
	PosterURL   *string     `gorm:"column:poster_url" json:"poster_url"`
	Plot        *string     `gorm:"column:plot" json:"plot"`
	Year        *string     `gorm:"column:year" json:"year"`
	Director    *string     `gorm:"column:director" json:"director"`
	Actors      *string     `gorm:"column:actors" json:"actors"`
	Runtime     *string     `gorm:"column:runtime" json:"runtime"`
	Country     *string     `gorm:"column:country" json:"country"`
}

func (Media) TableName() string { return "media" }

// StatusOrderSQL sorts libraries for display: things still to watch first,
// finished items last (those ordered by when they were watched).
const StatusOrderSQL = `CASE status
	WHEN 'quero_ver' THEN 1
	WHEN 'assistindo' THEN 2
	WHEN 'rever' THEN 3
	WHEN 'ja_vi' THEN 4
	END`

const DateOrderSQL = `CASE
	WHEN status = 'ja_vi' THEN COALESCE(date_watched, date_added)
	ELSE date_added
	END DESC`
