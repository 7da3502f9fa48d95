package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/sportscore-system/models"
	"github.com/Dosada05/sportscore-system/repositories"
	"golang.org/x/sync/errgroup"
)

// DashboardSummary - агрегированная сводка для главного экрана.
type DashboardSummary struct {
	LiveMatches     []models.Match `json:"live_matches"`
	UpcomingMatches []models.Match `json:"upcoming_matches"`
	RecentResults   []models.Match `json:"recent_results"`
	TeamsTotal      int            `json:"teams_total"`
	PlayersTotal    int            `json:"players_total"`
}

type DashboardService interface {
	GetSummary(ctx context.Context) (*DashboardSummary, error)
	GetRankings(ctx context.Context, sportID string) ([]models.Team, error)
	GetSchedule(ctx context.Context) ([]models.Match, error)
	GetTopScorers(ctx context.Context, limit int) ([]models.Player, error)
}

type dashboardService struct {
	matchRepo  repositories.MatchRepository
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	sportRepo  repositories.SportRepository
}

func NewDashboardService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	sportRepo repositories.SportRepository,
) DashboardService {
	return &dashboardService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		sportRepo:  sportRepo,
	}
}

func (s *dashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	var (
		live      []models.Match
		scheduled []models.Match
		completed []models.Match
		teams     []models.Team
		players   []models.Player
	)

	// Независимые выборки собираем параллельно.
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		live, err = s.matchRepo.ListByStatus(gCtx, models.MatchStatusLive)
		return err
	})
	g.Go(func() error {
		var err error
		scheduled, err = s.matchRepo.ListByStatus(gCtx, models.MatchStatusScheduled)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = s.matchRepo.ListByStatus(gCtx, models.MatchStatusCompleted)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.GetAll(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.GetAll(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard summary: %w", err)
	}

	// Последние результаты показываем свежими вперед.
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].ScheduledTime.After(completed[j].ScheduledTime)
	})
	const recentLimit = 10
	if len(completed) > recentLimit {
		completed = completed[:recentLimit]
	}

	return &DashboardSummary{
		LiveMatches:     live,
		UpcomingMatches: scheduled,
		RecentResults:   completed,
		TeamsTotal:      len(teams),
		PlayersTotal:    len(players),
	}, nil
}

// GetRankings возвращает турнирную таблицу вида спорта:
// очки, затем победы, затем имя для стабильности.
func (s *dashboardService) GetRankings(ctx context.Context, sportID string) ([]models.Team, error) {
	if _, err := s.sportRepo.GetByID(ctx, sportID); err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to load sport %s for rankings: %w", sportID, err)
	}

	teams, err := s.teamRepo.ListBySport(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rankings for sport %s: %w", sportID, err)
	}

	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].Points != teams[j].Points {
			return teams[i].Points > teams[j].Points
		}
		if teams[i].Wins != teams[j].Wins {
			return teams[i].Wins > teams[j].Wins
		}
		return teams[i].Name < teams[j].Name
	})
	return teams, nil
}

func (s *dashboardService) GetSchedule(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByStatus(ctx, models.MatchStatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	return matches, nil
}

func (s *dashboardService) GetTopScorers(ctx context.Context, limit int) ([]models.Player, error) {
	if limit <= 0 {
		limit = 10
	}

	players, err := s.playerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load top scorers: %w", err)
	}

	sort.SliceStable(players, func(i, j int) bool {
		if players[i].TotalGoals != players[j].TotalGoals {
			return players[i].TotalGoals > players[j].TotalGoals
		}
		if players[i].TotalPoints != players[j].TotalPoints {
			return players[i].TotalPoints > players[j].TotalPoints
		}
		return players[i].Name < players[j].Name
	})

	if len(players) > limit {
		players = players[:limit]
	}
	return players, nil
}
