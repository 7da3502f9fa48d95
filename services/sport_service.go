package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/sportscore-system/models"
	"github.com/Dosada05/sportscore-system/realtime"
	"github.com/Dosada05/sportscore-system/repositories"
)

type CreateSportInput struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	MaxPlayers  int    `json:"max_players"`
	ScoringType string `json:"scoring_type"`
}

// Виды спорта неизменяемы после создания.
type SportService interface {
	CreateSport(ctx context.Context, input CreateSportInput) (*models.Sport, error)
	GetSportByID(ctx context.Context, id string) (*models.Sport, error)
	GetAllSports(ctx context.Context) ([]models.Sport, error)
}

type sportService struct {
	sportRepo repositories.SportRepository
	hub       Broadcaster
}

func NewSportService(sportRepo repositories.SportRepository, hub Broadcaster) SportService {
	return &sportService{
		sportRepo: sportRepo,
		hub:       hub,
	}
}

func (s *sportService) CreateSport(ctx context.Context, input CreateSportInput) (*models.Sport, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSportNameRequired
	}
	sportType := strings.TrimSpace(input.Type)
	if sportType == "" {
		return nil, ErrSportTypeRequired
	}
	if input.MaxPlayers <= 0 {
		return nil, ErrSportInvalidRoster
	}

	sport := &models.Sport{
		Name:        name,
		Type:        sportType,
		MaxPlayers:  input.MaxPlayers,
		ScoringType: strings.TrimSpace(input.ScoringType),
	}

	if err := s.sportRepo.Create(ctx, sport); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSportCreationFailed, err)
	}

	s.hub.Broadcast(realtime.EventSportCreated, sport)
	return sport, nil
}

func (s *sportService) GetSportByID(ctx context.Context, id string) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to get sport by id %s: %w", id, err)
	}
	return sport, nil
}

func (s *sportService) GetAllSports(ctx context.Context) ([]models.Sport, error) {
	sports, err := s.sportRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sports: %w", err)
	}
	if sports == nil {
		return []models.Sport{}, nil
	}
	return sports, nil
}
