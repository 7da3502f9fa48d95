package models

type Player struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	TeamID   string  `json:"team_id"`
	Number   int     `json:"number"`
	Position *string `json:"position,omitempty"`

	// Накопительная статистика. Обновляется ТОЛЬКО агрегатором при завершении матча.
	TotalPoints int `json:"total_points"`
	TotalGoals  int `json:"total_goals"`
	GamesPlayed int `json:"games_played"`

	Team *Team `json:"team,omitempty"`

	PhotoKey *string `json:"-"`
	PhotoURL *string `json:"photo_url,omitempty"`
}
