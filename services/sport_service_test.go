package services

import (
	"context"
	"testing"

	"github.com/Dosada05/sportscore-system/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSport(t *testing.T) {
	ctx := context.Background()
	hub := &recordingBroadcaster{}
	service := NewSportService(newFakeSportRepo(), hub)

	sport, err := service.CreateSport(ctx, CreateSportInput{
		Name:        "Basketball",
		Type:        "basketball",
		MaxPlayers:  12,
		ScoringType: "points",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sport.ID)
	assert.Contains(t, hub.eventNames(), realtime.EventSportCreated)

	t.Run("name required", func(t *testing.T) {
		_, err := service.CreateSport(ctx, CreateSportInput{Type: "basketball", MaxPlayers: 12})
		assert.ErrorIs(t, err, ErrSportNameRequired)
	})

	t.Run("type required", func(t *testing.T) {
		_, err := service.CreateSport(ctx, CreateSportInput{Name: "Basketball", MaxPlayers: 12})
		assert.ErrorIs(t, err, ErrSportTypeRequired)
	})

	t.Run("max players must be positive", func(t *testing.T) {
		_, err := service.CreateSport(ctx, CreateSportInput{Name: "Basketball", Type: "basketball"})
		assert.ErrorIs(t, err, ErrSportInvalidRoster)
	})
}

func TestGetSportByID(t *testing.T) {
	ctx := context.Background()
	service := NewSportService(newFakeSportRepo(), &recordingBroadcaster{})

	created, err := service.CreateSport(ctx, CreateSportInput{Name: "Cricket", Type: "cricket", MaxPlayers: 11, ScoringType: "runs"})
	require.NoError(t, err)

	got, err := service.GetSportByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cricket", got.Name)

	_, err = service.GetSportByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrSportNotFound)
}
