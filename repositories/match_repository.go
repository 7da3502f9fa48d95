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
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchTeamInvalid    = errors.New("match team conflict or invalid")
	ErrMatchSportInvalid   = errors.New("match sport conflict or invalid")
	ErrMatchStatusConflict = errors.New("match status conflict")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error)
	GetAll(ctx context.Context) ([]models.Match, error)
	ListBySport(ctx context.Context, sportID string) ([]models.Match, error)
	ListByStatus(ctx context.Context, status models.MatchStatus) ([]models.Match, error)
	UpdateScore(ctx context.Context, id string, team1Score, team2Score int) error
	// TransitionStatus - compare-and-swap статуса: обновление проходит только если
	// текущий статус входит в from. Иначе ErrMatchStatusConflict (или ErrMatchNotFound,
	// если строки нет вовсе - различает вызывающий).
	TransitionStatus(ctx context.Context, exec SQLExecutor, id string, from []models.MatchStatus, to models.MatchStatus) error
	// CompleteMatch - CAS live→completed с одновременной записью победителя.
	CompleteMatch(ctx context.Context, exec SQLExecutor, id string, winnerID *string) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.Status == "" {
		match.Status = models.MatchStatusScheduled
	}
	query := `
		INSERT INTO matches
			(id, sport_id, team1_id, team2_id, scheduled_time, venue, status, team1_score, team2_score, winner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, NULL)`

	_, err := r.db.ExecContext(ctx, query,
		match.ID,
		match.SportID,
		match.Team1ID,
		match.Team2ID,
		match.ScheduledTime,
		match.Venue,
		match.Status,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "matches_sport_id_fkey":
				return ErrMatchSportInvalid
			case "matches_team1_id_fkey", "matches_team2_id_fkey":
				return ErrMatchTeamInvalid
			}
		}
		return fmt.Errorf("failed to insert match: %w", err)
	}
	match.Team1Score, match.Team2Score = 0, 0
	match.WinnerID = nil
	return nil
}

func (r *postgresMatchRepository) scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := rowScanner.Scan(
		&m.ID, &m.SportID, &m.Team1ID, &m.Team2ID, &m.ScheduledTime,
		&m.Venue, &m.Status, &m.Team1Score, &m.Team2Score, &m.WinnerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, sport_id, team1_id, team2_id, scheduled_time, venue, status, team1_score, team2_score, winner_id
		FROM matches
		WHERE id = $1`
	row := executor.QueryRowContext(ctx, query, id)
	return r.scanMatch(row)
}

func (r *postgresMatchRepository) GetAll(ctx context.Context) ([]models.Match, error) {
	return r.list(ctx, "", nil)
}

func (r *postgresMatchRepository) ListBySport(ctx context.Context, sportID string) ([]models.Match, error) {
	return r.list(ctx, "sport_id", &sportID)
}

func (r *postgresMatchRepository) ListByStatus(ctx context.Context, status models.MatchStatus) ([]models.Match, error) {
	statusStr := string(status)
	return r.list(ctx, "status", &statusStr)
}

func (r *postgresMatchRepository) list(ctx context.Context, filterColumn string, filterValue *string) ([]models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, sport_id, team1_id, team2_id, scheduled_time, venue, status, team1_score, team2_score, winner_id
		FROM matches`)

	args := make([]interface{}, 0, 1)
	if filterColumn != "" && filterValue != nil {
		queryBuilder.WriteString(" WHERE " + filterColumn + " = $" + strconv.Itoa(1))
		args = append(args, *filterValue)
	}
	queryBuilder.WriteString(" ORDER BY scheduled_time ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateScore(ctx context.Context, id string, team1Score, team2Score int) error {
	query := `UPDATE matches SET team1_score = $1, team2_score = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, team1Score, team2Score, id)
	if err != nil {
		return fmt.Errorf("failed to update score for match %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) TransitionStatus(ctx context.Context, exec SQLExecutor, id string, from []models.MatchStatus, to models.MatchStatus) error {
	executor := r.getExecutor(exec)

	fromStrs := make([]string, len(from))
	for i, s := range from {
		fromStrs[i] = string(s)
	}
	query := `UPDATE matches SET status = $1 WHERE id = $2 AND status = ANY($3)`
	result, err := executor.ExecContext(ctx, query, to, id, pq.Array(fromStrs))
	if err != nil {
		return fmt.Errorf("failed to transition match %s to %s: %w", id, to, err)
	}
	return checkAffectedRows(result, ErrMatchStatusConflict)
}

func (r *postgresMatchRepository) CompleteMatch(ctx context.Context, exec SQLExecutor, id string, winnerID *string) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET status = $1, winner_id = $2
		WHERE id = $3 AND status = $4`
	result, err := executor.ExecContext(ctx, query, models.MatchStatusCompleted, winnerID, id, models.MatchStatusLive)
	if err != nil {
		return fmt.Errorf("failed to complete match %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchStatusConflict)
}
