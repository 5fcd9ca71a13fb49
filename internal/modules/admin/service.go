package admin

import (
	"context"
	"math"
	"strings"

	"cinetrack/internal/repository"
)

type StatsRepositoryInterface interface {
	Totals(ctx context.Context) (*repository.Totals, error)
	PerUser(ctx context.Context) ([]repository.UserStatsRow, error)
	StatusBreakdown(ctx context.Context) (map[string]int64, error)
}

type Service struct {
	stats StatsRepositoryInterface
}

func NewService(stats StatsRepositoryInterface) *Service {
	return &Service{stats: stats}
}

// UserStats exposes users by first name only; the dashboard is about
// activity, not identity.
type UserStats struct {
	ID         int64    `json:"id"`
	FirstName  string   `json:"first_name"`
	MediaCount int64    `json:"media_count"`
	AvgRating  *float64 `json:"avg_rating"`
}

type TopUser struct {
	FirstName  string `json:"first_name"`
	MediaCount int64  `json:"media_count"`
}

type StatsResponse struct {
	TotalUsers      int64            `json:"total_users"`
	TotalMedia      int64            `json:"total_media"`
	TotalMovies     int64            `json:"total_movies"`
	TotalSeries     int64            `json:"total_series"`
	AvgRating       *float64         `json:"avg_rating"`
	StatusBreakdown map[string]int64 `json:"status_breakdown"`
	Users           []UserStats      `json:"users"`
	TopUser         *TopUser         `json:"top_user"`
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	totals, err := s.stats.Totals(ctx)
	if err != nil {
		return nil, err
	}
	perUser, err := s.stats.PerUser(ctx)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.stats.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}

	resp := &StatsResponse{
		TotalUsers:      totals.TotalUsers,
		TotalMedia:      totals.TotalMedia,
		TotalMovies:     totals.TotalMovies,
		TotalSeries:     totals.TotalSeries,
		AvgRating:       round1(totals.AvgRating),
		StatusBreakdown: breakdown,
		Users:           make([]UserStats, 0, len(perUser)),
	}

	for _, row := range perUser {
		resp.Users = append(resp.Users, UserStats{
			ID:         row.ID,
			FirstName:  firstName(row.Name),
			MediaCount: row.MediaCount,
			AvgRating:  round1(row.AvgRating),
		})
	}

	if len(perUser) > 0 && perUser[0].MediaCount > 0 {
		resp.TopUser = &TopUser{
			FirstName:  firstName(perUser[0].Name),
			MediaCount: perUser[0].MediaCount,
		}
	}

	return resp, nil
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

func round1(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*10) / 10
	return &r
}
