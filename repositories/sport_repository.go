package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/sportscore-system/models"
	"github.com/google/uuid"
)

var ErrSportNotFound = errors.New("sport not found")

type SportRepository interface {
	Create(ctx context.Context, sport *models.Sport) error
	GetByID(ctx context.Context, id string) (*models.Sport, error)
	GetAll(ctx context.Context) ([]models.Sport, error)
}

type postgresSportRepository struct {
	db *sql.DB
}

func NewPostgresSportRepository(db *sql.DB) SportRepository {
	return &postgresSportRepository{db: db}
}

func (r *postgresSportRepository) Create(ctx context.Context, sport *models.Sport) error {
	if sport.ID == "" {
		sport.ID = uuid.NewString()
	}
	query := `
		INSERT INTO sports (id, name, type, max_players, scoring_type)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		sport.ID,
		sport.Name,
		sport.Type,
		sport.MaxPlayers,
		sport.ScoringType,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sport: %w", err)
	}
	return nil
}

func (r *postgresSportRepository) GetByID(ctx context.Context, id string) (*models.Sport, error) {
	query := `
		SELECT id, name, type, max_players, scoring_type
		FROM sports
		WHERE id = $1`

	sport := &models.Sport{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sport.ID,
		&sport.Name,
		&sport.Type,
		&sport.MaxPlayers,
		&sport.ScoringType,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to scan sport by id %s: %w", id, err)
	}
	return sport, nil
}

func (r *postgresSportRepository) GetAll(ctx context.Context) ([]models.Sport, error) {
	query := `
		SELECT id, name, type, max_players, scoring_type
		FROM sports
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sports: %w", err)
	}
	defer rows.Close()

	sports := make([]models.Sport, 0)
	for rows.Next() {
		var sport models.Sport
		if scanErr := rows.Scan(
			&sport.ID,
			&sport.Name,
			&sport.Type,
			&sport.MaxPlayers,
			&sport.ScoringType,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan sport row: %w", scanErr)
		}
		sports = append(sports, sport)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during sport rows iteration: %w", err)
	}
	return sports, nil
}
