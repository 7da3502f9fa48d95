package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/sportscore-system/repositories"
)

// Очки за исход матча.
const (
	standingsWinPoints  = 3
	standingsDrawPoints = 1
)

// standingsAggregator переводит исход одного матча ровно в одну корректировку
// wins/losses/points для каждой из двух участвовавших команд. Про сам матч
// агрегатор ничего не знает: вход - две команды и победитель (nil = ничья).
type standingsAggregator struct {
	teamRepo repositories.TeamRepository
}

func newStandingsAggregator(teamRepo repositories.TeamRepository) *standingsAggregator {
	return &standingsAggregator{teamRepo: teamRepo}
}

func (a *standingsAggregator) Apply(ctx context.Context, exec repositories.SQLExecutor, team1ID, team2ID string, winnerID *string) error {
	switch {
	case winnerID == nil:
		// Ничья: обе команды получают по одному очку, wins/losses не трогаем.
		if err := a.teamRepo.ApplyStandingsDelta(ctx, exec, team1ID, 0, 0, standingsDrawPoints); err != nil {
			return fmt.Errorf("failed to apply draw standings for team %s: %w", team1ID, err)
		}
		if err := a.teamRepo.ApplyStandingsDelta(ctx, exec, team2ID, 0, 0, standingsDrawPoints); err != nil {
			return fmt.Errorf("failed to apply draw standings for team %s: %w", team2ID, err)
		}
	case *winnerID == team1ID:
		return a.applyDecisive(ctx, exec, team1ID, team2ID)
	case *winnerID == team2ID:
		return a.applyDecisive(ctx, exec, team2ID, team1ID)
	default:
		return fmt.Errorf("winner %s is not a participant of the match", *winnerID)
	}
	return nil
}

func (a *standingsAggregator) applyDecisive(ctx context.Context, exec repositories.SQLExecutor, winnerID, loserID string) error {
	if err := a.teamRepo.ApplyStandingsDelta(ctx, exec, winnerID, 1, 0, standingsWinPoints); err != nil {
		return fmt.Errorf("failed to apply win standings for team %s: %w", winnerID, err)
	}
	if err := a.teamRepo.ApplyStandingsDelta(ctx, exec, loserID, 0, 1, 0); err != nil {
		return fmt.Errorf("failed to apply loss standings for team %s: %w", loserID, err)
	}
	return nil
}
