package media

import (
	"errors"
	"fmt"

	"cinetrack/internal/domain"
)

var ErrNotFound = errors.New("media not found")

// DuplicateError carries the tier that matched and the row already owned, so
// handlers can tell the client exactly what collided.
type DuplicateError struct {
	// Tier is one of "imdb_id", "title_year", "title".
	Tier     string
	Existing *domain.Media
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate media (%s match with #%d)", e.Tier, e.Existing.ID)
}
