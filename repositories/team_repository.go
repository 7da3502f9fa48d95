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
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamSportInvalid = errors.New("team sport conflict or invalid")
)

// TeamUpdateDetails - частичное обновление. nil-поля не трогаются.
type TeamUpdateDetails struct {
	Name  *string
	Color *string
}

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error)
	GetAll(ctx context.Context) ([]models.Team, error)
	ListBySport(ctx context.Context, sportID string) ([]models.Team, error)
	UpdateDetails(ctx context.Context, id string, details TeamUpdateDetails) error
	UpdatePhotoKey(ctx context.Context, id string, photoKey *string) error
	// ApplyStandingsDelta атомарно инкрементирует счётчики турнирной таблицы.
	ApplyStandingsDelta(ctx context.Context, exec SQLExecutor, id string, wins, losses, points int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	query := `
		INSERT INTO teams (id, name, sport_id, color, photo_key, wins, losses, points)
		VALUES ($1, $2, $3, $4, $5, 0, 0, 0)`

	_, err := r.db.ExecContext(ctx, query,
		team.ID,
		team.Name,
		team.SportID,
		team.Color,
		team.PhotoKey,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "teams_sport_id_fkey" {
			return ErrTeamSportInvalid
		}
		return fmt.Errorf("failed to insert team: %w", err)
	}
	// Счётчики заданы схемой, но дублируем для консистентности возвращаемой модели.
	team.Wins, team.Losses, team.Points = 0, 0, 0
	return nil
}

func (r *postgresTeamRepository) scanTeam(rowScanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := rowScanner.Scan(
		&t.ID, &t.Name, &t.SportID, &t.Color, &t.PhotoKey,
		&t.Wins, &t.Losses, &t.Points,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, sport_id, color, photo_key, wins, losses, points
		FROM teams
		WHERE id = $1`
	row := executor.QueryRowContext(ctx, query, id)
	return r.scanTeam(row)
}

func (r *postgresTeamRepository) GetAll(ctx context.Context) ([]models.Team, error) {
	return r.list(ctx, "", nil)
}

func (r *postgresTeamRepository) ListBySport(ctx context.Context, sportID string) ([]models.Team, error) {
	return r.list(ctx, "sport_id", &sportID)
}

func (r *postgresTeamRepository) list(ctx context.Context, filterColumn string, filterValue *string) ([]models.Team, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, name, sport_id, color, photo_key, wins, losses, points
		FROM teams`)

	args := make([]interface{}, 0, 1)
	if filterColumn != "" && filterValue != nil {
		queryBuilder.WriteString(" WHERE " + filterColumn + " = $" + strconv.Itoa(1))
		args = append(args, *filterValue)
	}
	queryBuilder.WriteString(" ORDER BY points DESC, wins DESC, name ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		t, scanErr := r.scanTeam(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", scanErr)
		}
		teams = append(teams, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during team rows iteration: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) UpdateDetails(ctx context.Context, id string, details TeamUpdateDetails) error {
	setClauses := make([]string, 0, 2)
	args := make([]interface{}, 0, 3)
	placeholderIndex := 1

	if details.Name != nil {
		setClauses = append(setClauses, "name = $"+strconv.Itoa(placeholderIndex))
		args = append(args, *details.Name)
		placeholderIndex++
	}
	if details.Color != nil {
		setClauses = append(setClauses, "color = $"+strconv.Itoa(placeholderIndex))
		args = append(args, *details.Color)
		placeholderIndex++
	}
	if len(setClauses) == 0 {
		return nil
	}

	query := "UPDATE teams SET " + strings.Join(setClauses, ", ") +
		" WHERE id = $" + strconv.Itoa(placeholderIndex)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update team %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdatePhotoKey(ctx context.Context, id string, photoKey *string) error {
	query := `UPDATE teams SET photo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, photoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update team photo key %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) ApplyStandingsDelta(ctx context.Context, exec SQLExecutor, id string, wins, losses, points int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE teams
		SET wins = wins + $1, losses = losses + $2, points = points + $3
		WHERE id = $4`
	result, err := executor.ExecContext(ctx, query, wins, losses, points, id)
	if err != nil {
		return fmt.Errorf("failed to apply standings delta for team %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
