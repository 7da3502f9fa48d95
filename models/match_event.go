package models

import "time"

type EventType string

const (
	EventTypeGoal    EventType = "goal"
	EventTypePoint   EventType = "point"
	EventTypeFoul    EventType = "foul"
	EventTypeTimeout EventType = "timeout"
)

// Known сообщает, входит ли тип события в базовый словарь.
// Неизвестные типы сохраняются как есть, но агрегация статистики их игнорирует.
func (t EventType) Known() bool {
	switch t {
	case EventTypeGoal, EventTypePoint, EventTypeFoul, EventTypeTimeout:
		return true
	}
	return false
}

// MatchEvent - неизменяемая запись о событии внутри матча.
// PlayerID может быть nil для командных событий (например, командный фол).
type MatchEvent struct {
	ID          string    `json:"id"`
	MatchID     string    `json:"match_id"`
	TeamID      string    `json:"team_id"`
	PlayerID    *string   `json:"player_id,omitempty"`
	EventType   EventType `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Description *string   `json:"description,omitempty"`
}
