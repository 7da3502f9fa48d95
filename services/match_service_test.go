package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Dosada05/sportscore-system/models"
	"github.com/Dosada05/sportscore-system/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchServiceFixture struct {
	service    MatchService
	matchRepo  *fakeMatchRepo
	teamRepo   *fakeTeamRepo
	playerRepo *fakePlayerRepo
	eventRepo  *fakeMatchEventRepo
	hub        *recordingBroadcaster

	sport models.Sport
	team1 models.Team
	team2 models.Team
}

func newMatchServiceFixture(t *testing.T) *matchServiceFixture {
	t.Helper()
	ctx := context.Background()

	sportRepo := newFakeSportRepo()
	teamRepo := newFakeTeamRepo()
	playerRepo := newFakePlayerRepo()
	matchRepo := newFakeMatchRepo()
	eventRepo := newFakeMatchEventRepo()
	hub := &recordingBroadcaster{}

	sport := models.Sport{Name: "Basketball", Type: "basketball", MaxPlayers: 12, ScoringType: "points"}
	require.NoError(t, sportRepo.Create(ctx, &sport))

	team1 := models.Team{Name: "Hawks", SportID: sport.ID}
	team2 := models.Team{Name: "Wolves", SportID: sport.ID}
	require.NoError(t, teamRepo.Create(ctx, &team1))
	require.NoError(t, teamRepo.Create(ctx, &team2))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewMatchService(fakeTxRunner{}, matchRepo, sportRepo, teamRepo, playerRepo, eventRepo, hub, logger)

	return &matchServiceFixture{
		service:    service,
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		eventRepo:  eventRepo,
		hub:        hub,
		sport:      sport,
		team1:      team1,
		team2:      team2,
	}
}

func (f *matchServiceFixture) createMatch(t *testing.T) *models.Match {
	t.Helper()
	match, err := f.service.CreateMatch(context.Background(), CreateMatchInput{
		SportID:       f.sport.ID,
		Team1ID:       f.team1.ID,
		Team2ID:       f.team2.ID,
		ScheduledTime: time.Now().Add(time.Hour),
		Venue:         "Main Arena",
	})
	require.NoError(t, err)
	return match
}

func (f *matchServiceFixture) createLiveMatch(t *testing.T) *models.Match {
	t.Helper()
	match := f.createMatch(t)
	started, err := f.service.StartMatch(context.Background(), match.ID)
	require.NoError(t, err)
	return started
}

func (f *matchServiceFixture) addPlayer(t *testing.T, teamID, name string) models.Player {
	t.Helper()
	player := models.Player{Name: name, TeamID: teamID}
	require.NoError(t, f.playerRepo.Create(context.Background(), &player))
	return player
}

func TestCreateMatch(t *testing.T) {
	f := newMatchServiceFixture(t)
	ctx := context.Background()

	match := f.createMatch(t)
	assert.Equal(t, models.MatchStatusScheduled, match.Status)
	assert.Equal(t, 0, match.Team1Score)
	assert.Equal(t, 0, match.Team2Score)
	assert.Nil(t, match.WinnerID)
	assert.Contains(t, f.hub.eventNames(), realtime.EventMatchCreated)

	t.Run("same team rejected", func(t *testing.T) {
		_, err := f.service.CreateMatch(ctx, CreateMatchInput{
			SportID: f.sport.ID,
			Team1ID: f.team1.ID,
			Team2ID: f.team1.ID,
			Venue:   "Main Arena",
		})
		assert.ErrorIs(t, err, ErrMatchSameTeam)
	})

	t.Run("venue required", func(t *testing.T) {
		_, err := f.service.CreateMatch(ctx, CreateMatchInput{
			SportID: f.sport.ID,
			Team1ID: f.team1.ID,
			Team2ID: f.team2.ID,
			Venue:   "   ",
		})
		assert.ErrorIs(t, err, ErrMatchVenueRequired)
	})

	t.Run("team from another sport rejected", func(t *testing.T) {
		foreign := models.Team{Name: "Strangers", SportID: "some-other-sport"}
		require.NoError(t, f.teamRepo.Create(ctx, &foreign))

		_, err := f.service.CreateMatch(ctx, CreateMatchInput{
			SportID: f.sport.ID,
			Team1ID: f.team1.ID,
			Team2ID: foreign.ID,
			Venue:   "Main Arena",
		})
		assert.ErrorIs(t, err, ErrMatchTeamSportMismatch)
	})

	t.Run("unknown sport rejected", func(t *testing.T) {
		_, err := f.service.CreateMatch(ctx, CreateMatchInput{
			SportID: "missing",
			Team1ID: f.team1.ID,
			Team2ID: f.team2.ID,
			Venue:   "Main Arena",
		})
		assert.ErrorIs(t, err, ErrSportNotFound)
	})
}

func TestStartMatch(t *testing.T) {
	f := newMatchServiceFixture(t)
	ctx := context.Background()
	match := f.createMatch(t)

	started, err := f.service.StartMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusLive, started.Status)
	assert.Contains(t, f.hub.eventNames(), realtime.EventMatchUpdated)

	t.Run("second start rejected", func(t *testing.T) {
		_, err := f.service.StartMatch(ctx, match.ID)
		assert.ErrorIs(t, err, ErrMatchInvalidTransition)
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := f.service.StartMatch(ctx, "missing")
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})
}

func TestUpdateScore(t *testing.T) {
	f := newMatchServiceFixture(t)
	ctx := context.Background()
	match := f.createLiveMatch(t)

	updated, err := f.service.UpdateScore(ctx, match.ID, 42, 40)
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Team1Score)
	assert.Equal(t, 40, updated.Team2Score)
	assert.Contains(t, f.hub.eventNames(), realtime.EventMatchScore)

	t.Run("negative score rejected", func(t *testing.T) {
		_, err := f.service.UpdateScore(ctx, match.ID, -1, 0)
		assert.ErrorIs(t, err, ErrMatchScoreNegative)
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := f.service.UpdateScore(ctx, "missing", 1, 0)
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})
}

func TestEndMatch_DecisiveOutcome(t *testing.T) {
	f := newMatchServiceFixture(t)
	ctx := context.Background()
	match := f.createLiveMatch(t)

	_, err := f.service.UpdateScore(ctx, match.ID, 98, 87)
	require.NoError(t, err)

	completed, err := f.service.EndMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusCompleted, completed.Status)
	require.NotNil(t, completed.WinnerID)
	assert.Equal(t, f.team1.ID, *completed.WinnerID)

	winner, err := f.teamRepo.GetByID(ctx, nil, f.team1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 0, winner.Losses)
	assert.Equal(t, 3, winner.Points)

	loser, err := f.teamRepo.GetByID(ctx, nil, f.team2.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, loser.Wins)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, 0, loser.Points)

	names := f.hub.eventNames()
	assert.Contains(t, names, realtime.EventMatchCompleted)
	assert.Contains(t, names, realtime.EventTeamsUpdated)
	assert.Contains(t, names, realtime.EventPlayersUpdated)
}

func TestEndMatch_Draw(t *testing.T) {
	f := newMatchServiceFixture(t)
	ctx := context.Background()
	match := f.createLiveMatch(t)

	_, err := f.service.UpdateScore(ctx, match.ID, 21, 21)
	require.NoError(t, err)

	completed, err := f.service.EndMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Nil(t, completed.WinnerID)

	for _, teamID := range []string{f.team1.ID, f.team2.ID} {
		team, err := f.teamRepo.GetByID(ctx, nil, teamID)
		require.NoError(t, err)
		assert.Equal(t, 0, team.Wins)
		assert.Equal(t, 0, team.Losses)
		assert.Equal(t, 1, team.Points)
	}
}

func TestEndMatch_Idempotent(t *testing.T) {
	f := newMatchServiceFixture(t)
	ctx := context.Background()
	match := f.createLiveMatch(t)

	_, err := f.service.UpdateScore(ctx, match.ID, 3, 1)
	require.NoError(t, err)

	_, err = f.service.EndMatch(ctx, match.ID)
	require.NoError(t, err)

	_, err = f.service.EndMatch(ctx, match.ID)
	assert.ErrorIs(t, err, ErrMatchInvalidTransition)

	// Повторное завершение не должно применить корректировки второй раз.
	winner, err := f.teamRepo.GetByID(ctx, nil, f.team1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 3, winner.Points)
}

func TestEndMatch_RequiresLiveStatus(t *testing.T) {
	f := newMatchServiceFixture(t)
	ctx := context.Background()
	match := f.createMatch(t)

	_, err := f.service.EndMatch(ctx, match.ID)
	assert.ErrorIs(t, err, ErrMatchInvalidTransition)

	t.Run("unknown match", func(t *testing.T) {
		_, err := f.service.EndMatch(ctx, "missing")
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})
}

func TestEndMatch_AppliesPlayerStats(t *testing.T) {
	f := newMatchServiceFixture(t)
	ctx := context.Background()
	match := f.createLiveMatch(t)

	scorer := f.addPlayer(t, f.team1.ID, "Scorer")
	shooter := f.addPlayer(t, f.team2.ID, "Shooter")
	enforcer := f.addPlayer(t, f.team2.ID, "Enforcer")
	benched := f.addPlayer(t, f.team1.ID, "Benched")

	addEvent := func(teamID string, playerID *string, eventType models.EventType) {
		_, err := f.service.CreateMatchEvent(ctx, CreateMatchEventInput{
			MatchID:   match.ID,
			TeamID:    teamID,
			PlayerID:  playerID,
			EventType: eventType,
		})
		require.NoError(t, err)
	}

	addEvent(f.team1.ID, &scorer.ID, models.EventTypeGoal)
	addEvent(f.team1.ID, &scorer.ID, models.EventTypeGoal)
	addEvent(f.team1.ID, &scorer.ID, models.EventTypePoint)
	addEvent(f.team2.ID, &shooter.ID, models.EventTypePoint)
	// Игрок только с фолом: счётчики не растут, но матч засчитывается.
	addEvent(f.team2.ID, &enforcer.ID, models.EventTypeFoul)
	// Командное событие без игрока никому не засчитывается.
	addEvent(f.team2.ID, nil, models.EventTypeTimeout)

	_, err := f.service.EndMatch(ctx, match.ID)
	require.NoError(t, err)

	got, err := f.playerRepo.GetByID(ctx, nil, scorer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalGoals)
	assert.Equal(t, 1, got.TotalPoints)
	assert.Equal(t, 1, got.GamesPlayed)

	got, err = f.playerRepo.GetByID(ctx, nil, shooter.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalGoals)
	assert.Equal(t, 1, got.TotalPoints)
	assert.Equal(t, 1, got.GamesPlayed)

	got, err = f.playerRepo.GetByID(ctx, nil, enforcer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalGoals)
	assert.Equal(t, 0, got.TotalPoints)
	assert.Equal(t, 1, got.GamesPlayed)

	got, err = f.playerRepo.GetByID(ctx, nil, benched.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.GamesPlayed)
}

func TestCancelMatch(t *testing.T) {
	f := newMatchServiceFixture(t)
	ctx := context.Background()

	t.Run("from scheduled", func(t *testing.T) {
		match := f.createMatch(t)
		cancelled, err := f.service.CancelMatch(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, models.MatchStatusCancelled, cancelled.Status)
	})

	t.Run("from live", func(t *testing.T) {
		match := f.createLiveMatch(t)
		cancelled, err := f.service.CancelMatch(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, models.MatchStatusCancelled, cancelled.Status)
	})

	t.Run("completed match cannot be cancelled", func(t *testing.T) {
		match := f.createLiveMatch(t)
		_, err := f.service.EndMatch(ctx, match.ID)
		require.NoError(t, err)

		_, err = f.service.CancelMatch(ctx, match.ID)
		assert.ErrorIs(t, err, ErrMatchInvalidTransition)
	})

	t.Run("cancelled match has no standings effect", func(t *testing.T) {
		before, err := f.teamRepo.GetByID(ctx, nil, f.team1.ID)
		require.NoError(t, err)

		match := f.createLiveMatch(t)
		_, err = f.service.UpdateScore(ctx, match.ID, 10, 5)
		require.NoError(t, err)
		_, err = f.service.CancelMatch(ctx, match.ID)
		require.NoError(t, err)

		after, err := f.teamRepo.GetByID(ctx, nil, f.team1.ID)
		require.NoError(t, err)
		assert.Equal(t, before.Wins, after.Wins)
		assert.Equal(t, before.Points, after.Points)
	})
}

func TestCreateMatchEvent(t *testing.T) {
	f := newMatchServiceFixture(t)
	ctx := context.Background()
	match := f.createLiveMatch(t)
	player := f.addPlayer(t, f.team1.ID, "Scorer")

	event, err := f.service.CreateMatchEvent(ctx, CreateMatchEventInput{
		MatchID:   match.ID,
		TeamID:    f.team1.ID,
		PlayerID:  &player.ID,
		EventType: models.EventTypeGoal,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Contains(t, f.hub.eventNames(), realtime.EventEventCreated)

	t.Run("team must participate in match", func(t *testing.T) {
		stranger := models.Team{Name: "Strangers", SportID: f.sport.ID}
		require.NoError(t, f.teamRepo.Create(ctx, &stranger))

		_, err := f.service.CreateMatchEvent(ctx, CreateMatchEventInput{
			MatchID:   match.ID,
			TeamID:    stranger.ID,
			EventType: models.EventTypeGoal,
		})
		assert.ErrorIs(t, err, ErrEventTeamNotInMatch)
	})

	t.Run("player must belong to event team", func(t *testing.T) {
		_, err := f.service.CreateMatchEvent(ctx, CreateMatchEventInput{
			MatchID:   match.ID,
			TeamID:    f.team2.ID,
			PlayerID:  &player.ID,
			EventType: models.EventTypeGoal,
		})
		assert.ErrorIs(t, err, ErrEventPlayerNotInTeam)
	})

	t.Run("event type required", func(t *testing.T) {
		_, err := f.service.CreateMatchEvent(ctx, CreateMatchEventInput{
			MatchID: match.ID,
			TeamID:  f.team1.ID,
		})
		assert.ErrorIs(t, err, ErrMatchEventTypeRequired)
	})

	t.Run("unknown event type is stored as-is", func(t *testing.T) {
		event, err := f.service.CreateMatchEvent(ctx, CreateMatchEventInput{
			MatchID:   match.ID,
			TeamID:    f.team1.ID,
			EventType: models.EventType("penalty"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.EventType("penalty"), event.EventType)
	})

	t.Run("list returns match events", func(t *testing.T) {
		events, err := f.service.ListEventsByMatch(ctx, match.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, events)
	})
}

func TestDetermineWinner(t *testing.T) {
	match := &models.Match{Team1ID: "a", Team2ID: "b"}

	match.Team1Score, match.Team2Score = 2, 1
	winner := determineWinner(match)
	require.NotNil(t, winner)
	assert.Equal(t, "a", *winner)

	match.Team1Score, match.Team2Score = 1, 2
	winner = determineWinner(match)
	require.NotNil(t, winner)
	assert.Equal(t, "b", *winner)

	match.Team1Score, match.Team2Score = 0, 0
	assert.Nil(t, determineWinner(match))
}
