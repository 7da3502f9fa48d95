package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/sportscore-system/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrMatchEventNotFound      = errors.New("match event not found")
	ErrMatchEventMatchInvalid  = errors.New("match event match conflict or invalid")
	ErrMatchEventTeamInvalid   = errors.New("match event team conflict or invalid")
	ErrMatchEventPlayerInvalid = errors.New("match event player conflict or invalid")
)

// События матча неизменяемы: только вставка и чтение.
type MatchEventRepository interface {
	Create(ctx context.Context, event *models.MatchEvent) error
	GetByID(ctx context.Context, id string) (*models.MatchEvent, error)
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID string) ([]models.MatchEvent, error)
}

type postgresMatchEventRepository struct {
	db *sql.DB
}

func NewPostgresMatchEventRepository(db *sql.DB) MatchEventRepository {
	return &postgresMatchEventRepository{db: db}
}

func (r *postgresMatchEventRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchEventRepository) Create(ctx context.Context, event *models.MatchEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	query := `
		INSERT INTO match_events (id, match_id, team_id, player_id, event_type, ts, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.MatchID,
		event.TeamID,
		event.PlayerID,
		event.EventType,
		event.Timestamp,
		event.Description,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "match_events_match_id_fkey":
				return ErrMatchEventMatchInvalid
			case "match_events_team_id_fkey":
				return ErrMatchEventTeamInvalid
			case "match_events_player_id_fkey":
				return ErrMatchEventPlayerInvalid
			}
		}
		return fmt.Errorf("failed to insert match event: %w", err)
	}
	return nil
}

func (r *postgresMatchEventRepository) GetByID(ctx context.Context, id string) (*models.MatchEvent, error) {
	query := `
		SELECT id, match_id, team_id, player_id, event_type, ts, description
		FROM match_events
		WHERE id = $1`

	event := &models.MatchEvent{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.MatchID,
		&event.TeamID,
		&event.PlayerID,
		&event.EventType,
		&event.Timestamp,
		&event.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchEventNotFound
		}
		return nil, fmt.Errorf("failed to scan match event by id %s: %w", id, err)
	}
	return event, nil
}

func (r *postgresMatchEventRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID string) ([]models.MatchEvent, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, match_id, team_id, player_id, event_type, ts, description
		FROM match_events
		WHERE match_id = $1
		ORDER BY ts ASC, id ASC`

	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events for match %s: %w", matchID, err)
	}
	defer rows.Close()

	events := make([]models.MatchEvent, 0)
	for rows.Next() {
		var event models.MatchEvent
		if scanErr := rows.Scan(
			&event.ID,
			&event.MatchID,
			&event.TeamID,
			&event.PlayerID,
			&event.EventType,
			&event.Timestamp,
			&event.Description,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match event row: %w", scanErr)
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match event rows iteration: %w", err)
	}
	return events, nil
}
