package models

type Team struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	SportID string `json:"sport_id"`
	Color   string `json:"color"`

	// Турнирная таблица. Обновляется ТОЛЬКО агрегатором при завершении матча.
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Points int `json:"points"`

	Sport   *Sport   `json:"sport,omitempty"`
	Players []Player `json:"players,omitempty"`

	PhotoKey *string `json:"-"`
	PhotoURL *string `json:"photo_url,omitempty"`
}
