package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/sportscore-system/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player team conflict or invalid")
)

type PlayerUpdateDetails struct {
	Name     *string
	Number   *int
	Position *string
}

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Player, error)
	GetAll(ctx context.Context) ([]models.Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.Player, error)
	CountByTeam(ctx context.Context, teamID string) (int, error)
	UpdateDetails(ctx context.Context, id string, details PlayerUpdateDetails) error
	UpdatePhotoKey(ctx context.Context, id string, photoKey *string) error
	// ApplyStatsDelta атомарно инкрементирует накопительную статистику игрока.
	ApplyStatsDelta(ctx context.Context, exec SQLExecutor, id string, points, goals, games int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	query := `
		INSERT INTO players (id, name, team_id, number, position, photo_key, total_points, total_goals, games_played)
		VALUES ($1, $2, $3, $4, $5, $6, 0, 0, 0)`

	_, err := r.db.ExecContext(ctx, query,
		player.ID,
		player.Name,
		player.TeamID,
		player.Number,
		player.Position,
		player.PhotoKey,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "players_team_id_fkey" {
			return ErrPlayerTeamInvalid
		}
		return fmt.Errorf("failed to insert player: %w", err)
	}
	player.TotalPoints, player.TotalGoals, player.GamesPlayed = 0, 0, 0
	return nil
}

func (r *postgresPlayerRepository) scanPlayer(rowScanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := rowScanner.Scan(
		&p.ID, &p.Name, &p.TeamID, &p.Number, &p.Position, &p.PhotoKey,
		&p.TotalPoints, &p.TotalGoals, &p.GamesPlayed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Player, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, team_id, number, position, photo_key, total_points, total_goals, games_played
		FROM players
		WHERE id = $1`
	row := executor.QueryRowContext(ctx, query, id)
	return r.scanPlayer(row)
}

func (r *postgresPlayerRepository) GetAll(ctx context.Context) ([]models.Player, error) {
	return r.list(ctx, nil)
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	return r.list(ctx, &teamID)
}

func (r *postgresPlayerRepository) list(ctx context.Context, teamID *string) ([]models.Player, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, name, team_id, number, position, photo_key, total_points, total_goals, games_played
		FROM players`)

	args := make([]interface{}, 0, 1)
	if teamID != nil {
		queryBuilder.WriteString(" WHERE team_id = $1")
		args = append(args, *teamID)
	}
	queryBuilder.WriteString(" ORDER BY name ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		p, scanErr := r.scanPlayer(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", scanErr)
		}
		players = append(players, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) CountByTeam(ctx context.Context, teamID string) (int, error) {
	query := `SELECT COUNT(*) FROM players WHERE team_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, teamID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players for team %s: %w", teamID, err)
	}
	return count, nil
}

func (r *postgresPlayerRepository) UpdateDetails(ctx context.Context, id string, details PlayerUpdateDetails) error {
	setClauses := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	placeholderIndex := 1

	if details.Name != nil {
		setClauses = append(setClauses, "name = $"+strconv.Itoa(placeholderIndex))
		args = append(args, *details.Name)
		placeholderIndex++
	}
	if details.Number != nil {
		setClauses = append(setClauses, "number = $"+strconv.Itoa(placeholderIndex))
		args = append(args, *details.Number)
		placeholderIndex++
	}
	if details.Position != nil {
		setClauses = append(setClauses, "position = $"+strconv.Itoa(placeholderIndex))
		args = append(args, *details.Position)
		placeholderIndex++
	}
	if len(setClauses) == 0 {
		return nil
	}

	query := "UPDATE players SET " + strings.Join(setClauses, ", ") +
		" WHERE id = $" + strconv.Itoa(placeholderIndex)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update player %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdatePhotoKey(ctx context.Context, id string, photoKey *string) error {
	query := `UPDATE players SET photo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, photoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update player photo key %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) ApplyStatsDelta(ctx context.Context, exec SQLExecutor, id string, points, goals, games int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players
		SET total_points = total_points + $1, total_goals = total_goals + $2, games_played = games_played + $3
		WHERE id = $4`
	result, err := executor.ExecContext(ctx, query, points, goals, games, id)
	if err != nil {
		return fmt.Errorf("failed to apply stats delta for player %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
