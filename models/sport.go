package models

// Sport представляет вид спорта (баскетбол, футбол, крикет и т.д.).
type Sport struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`         // 'basketball', 'football', 'cricket', ...
	MaxPlayers  int    `json:"max_players"`  // максимальный размер ростера команды
	ScoringType string `json:"scoring_type"` // 'points', 'goals', 'runs'
}
