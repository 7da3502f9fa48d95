package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/sportscore-system/models"
	"github.com/Dosada05/sportscore-system/realtime"
	"github.com/Dosada05/sportscore-system/repositories"
)

var (
	ErrEventTeamNotInMatch  = errors.New("event team is not a participant of the match")
	ErrEventPlayerNotInTeam = errors.New("event player does not belong to the event team")
)

type CreateMatchInput struct {
	SportID       string    `json:"sport_id"`
	Team1ID       string    `json:"team1_id"`
	Team2ID       string    `json:"team2_id"`
	ScheduledTime time.Time `json:"scheduled_time"`
	Venue         string    `json:"venue"`
}

type CreateMatchEventInput struct {
	MatchID     string           `json:"match_id"`
	TeamID      string           `json:"team_id"`
	PlayerID    *string          `json:"player_id,omitempty"`
	EventType   models.EventType `json:"event_type"`
	Description *string          `json:"description,omitempty"`
}

// MatchService владеет переходами статусов матча и является единственной
// точкой, через которую проходят изменения счёта и терминальное завершение.
type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id string) (*models.Match, error)
	GetAllMatches(ctx context.Context) ([]models.Match, error)
	ListMatchesBySport(ctx context.Context, sportID string) ([]models.Match, error)
	ListLiveMatches(ctx context.Context) ([]models.Match, error)
	StartMatch(ctx context.Context, id string) (*models.Match, error)
	UpdateScore(ctx context.Context, id string, team1Score, team2Score int) (*models.Match, error)
	CancelMatch(ctx context.Context, id string) (*models.Match, error)
	EndMatch(ctx context.Context, id string) (*models.Match, error)
	CreateMatchEvent(ctx context.Context, input CreateMatchEventInput) (*models.MatchEvent, error)
	ListEventsByMatch(ctx context.Context, matchID string) ([]models.MatchEvent, error)
}

type matchService struct {
	txRunner   repositories.TxRunner
	matchRepo  repositories.MatchRepository
	sportRepo  repositories.SportRepository
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	eventRepo  repositories.MatchEventRepository

	standings   *standingsAggregator
	playerStats *playerStatsAggregator

	hub    Broadcaster
	logger *slog.Logger
}

func NewMatchService(
	txRunner repositories.TxRunner,
	matchRepo repositories.MatchRepository,
	sportRepo repositories.SportRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	eventRepo repositories.MatchEventRepository,
	hub Broadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		txRunner:    txRunner,
		matchRepo:   matchRepo,
		sportRepo:   sportRepo,
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		eventRepo:   eventRepo,
		standings:   newStandingsAggregator(teamRepo),
		playerStats: newPlayerStatsAggregator(playerRepo),
		hub:         hub,
		logger:      logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if strings.TrimSpace(input.Venue) == "" {
		return nil, ErrMatchVenueRequired
	}
	if input.Team1ID == input.Team2ID {
		return nil, ErrMatchSameTeam
	}

	if _, err := s.sportRepo.GetByID(ctx, input.SportID); err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrMatchCreationFailed, err)
	}

	// Обе команды должны существовать и принадлежать виду спорта матча.
	for _, teamID := range []string{input.Team1ID, input.Team2ID} {
		team, err := s.teamRepo.GetByID(ctx, nil, teamID)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, fmt.Errorf("%w: %w", ErrMatchCreationFailed, err)
		}
		if team.SportID != input.SportID {
			return nil, ErrMatchTeamSportMismatch
		}
	}

	match := &models.Match{
		SportID:       input.SportID,
		Team1ID:       input.Team1ID,
		Team2ID:       input.Team2ID,
		ScheduledTime: input.ScheduledTime,
		Venue:         strings.TrimSpace(input.Venue),
		Status:        models.MatchStatusScheduled,
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchSportInvalid):
			return nil, ErrSportNotFound
		case errors.Is(err, repositories.ErrMatchTeamInvalid):
			return nil, ErrTeamNotFound
		default:
			return nil, fmt.Errorf("%w: %w", ErrMatchCreationFailed, err)
		}
	}

	s.hub.Broadcast(realtime.EventMatchCreated, match)
	return match, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match by id %s: %w", id, err)
	}
	return match, nil
}

func (s *matchService) GetAllMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) ListMatchesBySport(ctx context.Context, sportID string) ([]models.Match, error) {
	matches, err := s.matchRepo.ListBySport(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for sport %s: %w", sportID, err)
	}
	return matches, nil
}

func (s *matchService) ListLiveMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByStatus(ctx, models.MatchStatusLive)
	if err != nil {
		return nil, fmt.Errorf("failed to list live matches: %w", err)
	}
	return matches, nil
}

// StartMatch переводит матч scheduled → live. Старт не из scheduled - ошибка,
// а не тихое затирание статуса.
func (s *matchService) StartMatch(ctx context.Context, id string) (*models.Match, error) {
	err := s.matchRepo.TransitionStatus(ctx, nil, id, []models.MatchStatus{models.MatchStatusScheduled}, models.MatchStatusLive)
	if err != nil {
		return nil, s.mapTransitionError(ctx, id, err)
	}

	match, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.hub.Broadcast(realtime.EventMatchUpdated, match)
	return match, nil
}

// UpdateScore - чистая установка обоих счетов (не инкремент). Логика "+1"
// остаётся на стороне вызывающего.
func (s *matchService) UpdateScore(ctx context.Context, id string, team1Score, team2Score int) (*models.Match, error) {
	if team1Score < 0 || team2Score < 0 {
		return nil, ErrMatchScoreNegative
	}

	if err := s.matchRepo.UpdateScore(ctx, id, team1Score, team2Score); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update score for match %s: %w", id, err)
	}

	match, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.hub.Broadcast(realtime.EventMatchScore, match)
	return match, nil
}

// CancelMatch - альтернативный терминальный статус, без побочных эффектов
// для турнирной таблицы и статистики.
func (s *matchService) CancelMatch(ctx context.Context, id string) (*models.Match, error) {
	err := s.matchRepo.TransitionStatus(ctx, nil, id,
		[]models.MatchStatus{models.MatchStatusScheduled, models.MatchStatusLive},
		models.MatchStatusCancelled,
	)
	if err != nil {
		return nil, s.mapTransitionError(ctx, id, err)
	}

	match, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.hub.Broadcast(realtime.EventMatchUpdated, match)
	return match, nil
}

// EndMatch завершает live-матч: определяет победителя по текущему счёту,
// применяет агрегаторы турнирной таблицы и статистики игроков. Всё в одной
// транзакции; переход статуса - CAS, поэтому повторный вызов не применит
// корректировки второй раз.
func (s *matchService) EndMatch(ctx context.Context, id string) (*models.Match, error) {
	match, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	winnerID := determineWinner(match)

	err = s.txRunner.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.CompleteMatch(ctx, exec, id, winnerID); err != nil {
			if errors.Is(err, repositories.ErrMatchStatusConflict) {
				return ErrMatchInvalidTransition
			}
			return err
		}

		if err := s.standings.Apply(ctx, exec, match.Team1ID, match.Team2ID, winnerID); err != nil {
			return err
		}

		events, err := s.eventRepo.ListByMatch(ctx, exec, id)
		if err != nil {
			return err
		}
		return s.playerStats.Apply(ctx, exec, events)
	})
	if err != nil {
		if errors.Is(err, ErrMatchInvalidTransition) {
			return nil, ErrMatchInvalidTransition
		}
		return nil, fmt.Errorf("failed to end match %s: %w", id, err)
	}

	completed, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(realtime.EventMatchCompleted, completed)
	s.broadcastStandingsSnapshots(ctx)
	return completed, nil
}

// broadcastStandingsSnapshots рассылает полные списки команд и игроков после
// завершения матча (фронтенд перерисовывает таблицы целиком). Ошибки чтения
// только логируются: сам матч уже завершён.
func (s *matchService) broadcastStandingsSnapshots(ctx context.Context) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to load teams for broadcast", slog.Any("error", err))
	} else {
		s.hub.Broadcast(realtime.EventTeamsUpdated, teams)
	}

	players, err := s.playerRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to load players for broadcast", slog.Any("error", err))
	} else {
		s.hub.Broadcast(realtime.EventPlayersUpdated, players)
	}
}

func (s *matchService) CreateMatchEvent(ctx context.Context, input CreateMatchEventInput) (*models.MatchEvent, error) {
	if strings.TrimSpace(string(input.EventType)) == "" {
		return nil, ErrMatchEventTypeRequired
	}

	match, err := s.GetMatchByID(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}
	if input.TeamID != match.Team1ID && input.TeamID != match.Team2ID {
		return nil, ErrEventTeamNotInMatch
	}
	if input.PlayerID != nil {
		player, err := s.playerRepo.GetByID(ctx, nil, *input.PlayerID)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return nil, ErrPlayerNotFound
			}
			return nil, fmt.Errorf("%w: %w", ErrEventCreationFailed, err)
		}
		if player.TeamID != input.TeamID {
			return nil, ErrEventPlayerNotInTeam
		}
	}

	event := &models.MatchEvent{
		MatchID:     input.MatchID,
		TeamID:      input.TeamID,
		PlayerID:    input.PlayerID,
		EventType:   input.EventType,
		Description: input.Description,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEventCreationFailed, err)
	}

	s.hub.Broadcast(realtime.EventEventCreated, event)
	return event, nil
}

func (s *matchService) ListEventsByMatch(ctx context.Context, matchID string) ([]models.MatchEvent, error) {
	if _, err := s.GetMatchByID(ctx, matchID); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListByMatch(ctx, nil, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for match %s: %w", matchID, err)
	}
	return events, nil
}

// determineWinner: победитель - команда с большим счётом, при равенстве nil (ничья).
func determineWinner(match *models.Match) *string {
	switch {
	case match.Team1Score > match.Team2Score:
		winner := match.Team1ID
		return &winner
	case match.Team2Score > match.Team1Score:
		winner := match.Team2ID
		return &winner
	default:
		return nil
	}
}

// mapTransitionError различает "матча нет" и "матч в неподходящем статусе":
// CAS-апдейт сам по себе не отличает одно от другого.
func (s *matchService) mapTransitionError(ctx context.Context, id string, err error) error {
	if errors.Is(err, repositories.ErrMatchStatusConflict) {
		if _, getErr := s.matchRepo.GetByID(ctx, nil, id); getErr != nil {
			if errors.Is(getErr, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return fmt.Errorf("failed to resolve status conflict for match %s: %w", id, getErr)
		}
		return ErrMatchInvalidTransition
	}
	return fmt.Errorf("failed to transition match %s: %w", id, err)
}
