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

type CreateTeamInput struct {
	Name    string `json:"name"`
	SportID string `json:"sport_id"`
	Color   string `json:"color"`
}

type UpdateTeamInput struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id string) (*models.Team, error)
	GetAllTeams(ctx context.Context) ([]models.Team, error)
	ListTeamsBySport(ctx context.Context, sportID string) ([]models.Team, error)
	UpdateTeamDetails(ctx context.Context, id string, input UpdateTeamInput) (*models.Team, error)
	UploadTeamPhoto(ctx context.Context, id string, contentType string, photo io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo  repositories.TeamRepository
	sportRepo repositories.SportRepository
	uploader  storage.FileUploader
	hub       Broadcaster
	logger    *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	sportRepo repositories.SportRepository,
	uploader storage.FileUploader,
	hub Broadcaster,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:  teamRepo,
		sportRepo: sportRepo,
		uploader:  uploader,
		hub:       hub,
		logger:    logger,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	if _, err := s.sportRepo.GetByID(ctx, input.SportID); err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrTeamCreationFailed, err)
	}

	team := &models.Team{
		Name:    name,
		SportID: input.SportID,
		Color:   strings.TrimSpace(input.Color),
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamSportInvalid) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrTeamCreationFailed, err)
	}

	s.hub.Broadcast(realtime.EventTeamCreated, team)
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by id %s: %w", id, err)
	}
	s.resolvePhotoURL(team)
	return team, nil
}

func (s *teamService) GetAllTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all teams: %w", err)
	}
	for i := range teams {
		s.resolvePhotoURL(&teams[i])
	}
	return teams, nil
}

func (s *teamService) ListTeamsBySport(ctx context.Context, sportID string) ([]models.Team, error) {
	if _, err := s.sportRepo.GetByID(ctx, sportID); err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to list teams for sport %s: %w", sportID, err)
	}
	teams, err := s.teamRepo.ListBySport(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for sport %s: %w", sportID, err)
	}
	for i := range teams {
		s.resolvePhotoURL(&teams[i])
	}
	return teams, nil
}

func (s *teamService) UpdateTeamDetails(ctx context.Context, id string, input UpdateTeamInput) (*models.Team, error) {
	details := repositories.TeamUpdateDetails{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTeamNameRequired
		}
		details.Name = &name
	}
	details.Color = input.Color

	if err := s.teamRepo.UpdateDetails(ctx, id, details); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("%w (id: %s): %w", ErrTeamUpdateFailed, id, err)
	}

	team, err := s.GetTeamByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.hub.Broadcast(realtime.EventTeamUpdated, team)
	return team, nil
}

func (s *teamService) UploadTeamPhoto(ctx context.Context, id string, contentType string, photo io.Reader) (*models.Team, error) {
	team, err := s.GetTeamByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%s/%s", id, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, contentType, photo)
	if err != nil {
		return nil, fmt.Errorf("%w (id: %s): %w", ErrTeamUpdateFailed, id, err)
	}

	if err := s.teamRepo.UpdatePhotoKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("%w (id: %s): %w", ErrTeamUpdateFailed, id, err)
	}

	// Старое фото чистим по возможности, это не критично.
	if team.PhotoKey != nil && *team.PhotoKey != result.Key {
		if delErr := s.uploader.Delete(ctx, *team.PhotoKey); delErr != nil {
			s.logger.Warn("failed to delete previous team photo", slog.String("team_id", id), slog.Any("error", delErr))
		}
	}

	updated, err := s.GetTeamByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.hub.Broadcast(realtime.EventTeamUpdated, updated)
	return updated, nil
}

func (s *teamService) resolvePhotoURL(team *models.Team) {
	if team.PhotoKey == nil || s.uploader == nil {
		return
	}
	if publicURL := s.uploader.GetPublicURL(*team.PhotoKey); publicURL != "" {
		team.PhotoURL = &publicURL
	}
}
