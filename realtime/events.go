package realtime

// Словарь событий, рассылаемых всем подключённым клиентам.
// Payload - всегда полная сущность (или список сущностей), без дельт.
const (
	EventSportCreated   = "sport:created"
	EventTeamCreated    = "team:created"
	EventTeamUpdated    = "team:updated"
	EventPlayerCreated  = "player:created"
	EventPlayerUpdated  = "player:updated"
	EventMatchCreated   = "match:created"
	EventMatchUpdated   = "match:updated"
	EventMatchScore     = "match:score"
	EventMatchCompleted = "match:completed"
	EventTeamsUpdated   = "teams:updated"
	EventPlayersUpdated = "players:updated"
	EventEventCreated   = "event:created"
)
