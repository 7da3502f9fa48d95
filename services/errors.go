package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed = errors.New("validation failed")

	// Ошибки, специфичные для сущностей
	ErrSportNotFound  = errors.New("sport not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrUserNotFound   = errors.New("user not found")

	// Спорт
	ErrSportNameRequired   = errors.New("sport name is required")
	ErrSportTypeRequired   = errors.New("sport type is required")
	ErrSportInvalidRoster  = errors.New("sport max players must be positive")
	ErrSportCreationFailed = errors.New("failed to create sport")

	// Команды
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrTeamCreationFailed = errors.New("failed to create team")
	ErrTeamUpdateFailed   = errors.New("failed to update team")

	// Игроки
	ErrPlayerNameRequired   = errors.New("player name is required")
	ErrPlayerInvalidNumber  = errors.New("player jersey number must not be negative")
	ErrTeamRosterFull       = errors.New("team roster is full for this sport")
	ErrPlayerCreationFailed = errors.New("failed to create player")
	ErrPlayerUpdateFailed   = errors.New("failed to update player")

	// Матчи и события
	ErrMatchSameTeam          = errors.New("match teams must be different")
	ErrMatchTeamSportMismatch = errors.New("match teams must belong to the match sport")
	ErrMatchVenueRequired     = errors.New("match venue is required")
	ErrMatchScoreNegative     = errors.New("match score must not be negative")
	ErrMatchInvalidTransition = errors.New("invalid match status transition")
	ErrMatchCreationFailed    = errors.New("failed to create match")
	ErrMatchEventTypeRequired = errors.New("event type is required")
	ErrEventCreationFailed    = errors.New("failed to create match event")

	// Аутентификация
	ErrAuthInvalidCredentials = errors.New("invalid username or password")
	ErrAuthUsernameTaken      = errors.New("username is already taken")
	ErrAuthInvalidRole        = errors.New("invalid user role")
)
