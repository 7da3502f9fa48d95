package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Dosada05/sportscore-system/models"
	"github.com/Dosada05/sportscore-system/realtime"
	"github.com/Dosada05/sportscore-system/repositories"
	"github.com/Dosada05/sportscore-system/storage"
	"github.com/google/uuid"
)

type CreatePlayerInput struct {
	Name     string `json:"name"`
	TeamID   string `json:"team_id"`
	Number   int    `json:"number"`
	Position string `json:"position"`
}

type UpdatePlayerInput struct {
	Name     *string `json:"name,omitempty"`
	Number   *int    `json:"number,omitempty"`
	Position *string `json:"position,omitempty"`
}

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id string) (*models.Player, error)
	GetAllPlayers(ctx context.Context) ([]models.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID string) ([]models.Player, error)
	UpdatePlayerDetails(ctx context.Context, id string, input UpdatePlayerInput) (*models.Player, error)
	UploadPlayerPhoto(ctx context.Context, id string, contentType string, photo io.Reader) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	sportRepo  repositories.SportRepository
	uploader   storage.FileUploader
	hub        Broadcaster
	logger     *slog.Logger
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	sportRepo repositories.SportRepository,
	uploader storage.FileUploader,
	hub Broadcaster,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		sportRepo:  sportRepo,
		uploader:   uploader,
		hub:        hub,
		logger:     logger,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if input.Number < 0 {
		return nil, ErrPlayerInvalidNumber
	}

	team, err := s.teamRepo.GetByID(ctx, nil, input.TeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrPlayerCreationFailed, err)
	}

	// Лимит состава берется из вида спорта команды.
	sport, err := s.sportRepo.GetByID(ctx, team.SportID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlayerCreationFailed, err)
	}
	if sport.MaxPlayers > 0 {
		count, err := s.playerRepo.CountByTeam(ctx, input.TeamID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPlayerCreationFailed, err)
		}
		if count >= sport.MaxPlayers {
			return nil, ErrTeamRosterFull
		}
	}

	player := &models.Player{
		Name:   name,
		TeamID: input.TeamID,
		Number: input.Number,
	}
	if position := strings.TrimSpace(input.Position); position != "" {
		player.Position = &position
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrPlayerCreationFailed, err)
	}

	s.hub.Broadcast(realtime.EventPlayerCreated, player)
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by id %s: %w", id, err)
	}
	s.resolvePhotoURL(player)
	return player, nil
}

func (s *playerService) GetAllPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all players: %w", err)
	}
	for i := range players {
		s.resolvePhotoURL(&players[i])
	}
	return players, nil
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, nil, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to list players for team %s: %w", teamID, err)
	}
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %s: %w", teamID, err)
	}
	for i := range players {
		s.resolvePhotoURL(&players[i])
	}
	return players, nil
}

func (s *playerService) UpdatePlayerDetails(ctx context.Context, id string, input UpdatePlayerInput) (*models.Player, error) {
	details := repositories.PlayerUpdateDetails{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrPlayerNameRequired
		}
		details.Name = &name
	}
	if input.Number != nil {
		if *input.Number < 0 {
			return nil, ErrPlayerInvalidNumber
		}
		details.Number = input.Number
	}
	details.Position = input.Position

	if err := s.playerRepo.UpdateDetails(ctx, id, details); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%w (id: %s): %w", ErrPlayerUpdateFailed, id, err)
	}

	player, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.hub.Broadcast(realtime.EventPlayerUpdated, player)
	return player, nil
}

func (s *playerService) UploadPlayerPhoto(ctx context.Context, id string, contentType string, photo io.Reader) (*models.Player, error) {
	player, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("players/%s/%s", id, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, contentType, photo)
	if err != nil {
		return nil, fmt.Errorf("%w (id: %s): %w", ErrPlayerUpdateFailed, id, err)
	}

	if err := s.playerRepo.UpdatePhotoKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("%w (id: %s): %w", ErrPlayerUpdateFailed, id, err)
	}

	if player.PhotoKey != nil && *player.PhotoKey != result.Key {
		if delErr := s.uploader.Delete(ctx, *player.PhotoKey); delErr != nil {
			s.logger.Warn("failed to delete previous player photo", slog.String("player_id", id), slog.Any("error", delErr))
		}
	}

	updated, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.hub.Broadcast(realtime.EventPlayerUpdated, updated)
	return updated, nil
}

func (s *playerService) resolvePhotoURL(player *models.Player) {
	if player.PhotoKey == nil || s.uploader == nil {
		return
	}
	if publicURL := s.uploader.GetPublicURL(*player.PhotoKey); publicURL != "" {
		player.PhotoURL = &publicURL
	}
}
