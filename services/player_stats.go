package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/sportscore-system/models"
	"github.com/Dosada05/sportscore-system/repositories"
)

// playerStatsAggregator сворачивает журнал событий завершённого матча
// в накопительные счётчики игроков. Применяется ровно один раз на матч
// (гарантируется CAS-переходом статуса в EndMatch).
type playerStatsAggregator struct {
	playerRepo repositories.PlayerRepository
}

func newPlayerStatsAggregator(playerRepo repositories.PlayerRepository) *playerStatsAggregator {
	return &playerStatsAggregator{playerRepo: playerRepo}
}

type playerStatDelta struct {
	Goals  int
	Points int
}

// foldEventStats разбивает события по игрокам. События без игрока (командные)
// отбрасываются. foul/timeout и неизвестные типы в счётчики не попадают,
// но само наличие события у игрока засчитывает ему сыгранный матч.
func foldEventStats(events []models.MatchEvent) map[string]playerStatDelta {
	deltas := make(map[string]playerStatDelta)
	for _, event := range events {
		if event.PlayerID == nil {
			continue
		}
		delta := deltas[*event.PlayerID]
		switch event.EventType {
		case models.EventTypeGoal:
			delta.Goals++
		case models.EventTypePoint:
			delta.Points++
		default:
			// foul, timeout, прочее: игрок отмечен в матче, счётчики не растут.
		}
		deltas[*event.PlayerID] = delta
	}
	return deltas
}

func (a *playerStatsAggregator) Apply(ctx context.Context, exec repositories.SQLExecutor, events []models.MatchEvent) error {
	for playerID, delta := range foldEventStats(events) {
		// games_played растёт на единицу независимо от числа событий игрока.
		if err := a.playerRepo.ApplyStatsDelta(ctx, exec, playerID, delta.Points, delta.Goals, 1); err != nil {
			return fmt.Errorf("failed to apply stats delta for player %s: %w", playerID, err)
		}
	}
	return nil
}
