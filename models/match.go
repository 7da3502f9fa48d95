package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

// Match - контест между двумя командами одного вида спорта.
// Порядок team1/team2 важен только для привязки счёта.
type Match struct {
	ID            string      `json:"id"`
	SportID       string      `json:"sport_id"`
	Team1ID       string      `json:"team1_id"`
	Team2ID       string      `json:"team2_id"`
	ScheduledTime time.Time   `json:"scheduled_time"`
	Venue         string      `json:"venue"`
	Status        MatchStatus `json:"status"`
	Team1Score    int         `json:"team1_score"`
	Team2Score    int         `json:"team2_score"`
	WinnerID      *string     `json:"winner_id,omitempty"` // nil = ничья или матч не завершён

	Sport *Sport `json:"sport,omitempty"`
	Team1 *Team  `json:"team1,omitempty"`
	Team2 *Team  `json:"team2,omitempty"`
}
