package services

import (
	"context"
	"io"
	"sync"

	"github.com/Dosada05/sportscore-system/models"
	"github.com/Dosada05/sportscore-system/repositories"
	"github.com/Dosada05/sportscore-system/storage"
	"github.com/google/uuid"
)

// In-memory фейки репозиториев для тестов сервисного слоя.

type fakeTxRunner struct{}

func (fakeTxRunner) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type recordedBroadcast struct {
	Event   string
	Payload interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedBroadcast
}

func (b *recordingBroadcaster) Broadcast(event string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedBroadcast{Event: event, Payload: payload})
}

func (b *recordingBroadcaster) eventNames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, len(b.events))
	for i, e := range b.events {
		names[i] = e.Event
	}
	return names
}

type fakeSportRepo struct {
	sports map[string]*models.Sport
}

func newFakeSportRepo() *fakeSportRepo {
	return &fakeSportRepo{sports: make(map[string]*models.Sport)}
}

func (r *fakeSportRepo) Create(ctx context.Context, sport *models.Sport) error {
	if sport.ID == "" {
		sport.ID = uuid.NewString()
	}
	copied := *sport
	r.sports[sport.ID] = &copied
	return nil
}

func (r *fakeSportRepo) GetByID(ctx context.Context, id string) (*models.Sport, error) {
	sport, ok := r.sports[id]
	if !ok {
		return nil, repositories.ErrSportNotFound
	}
	copied := *sport
	return &copied, nil
}

func (r *fakeSportRepo) GetAll(ctx context.Context) ([]models.Sport, error) {
	out := make([]models.Sport, 0, len(r.sports))
	for _, s := range r.sports {
		out = append(out, *s)
	}
	return out, nil
}

type fakeTeamRepo struct {
	teams map[string]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]*models.Team)}
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	copied := *team
	r.teams[team.ID] = &copied
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *fakeTeamRepo) GetAll(ctx context.Context) ([]models.Team, error) {
	out := make([]models.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTeamRepo) ListBySport(ctx context.Context, sportID string) ([]models.Team, error) {
	out := make([]models.Team, 0)
	for _, t := range r.teams {
		if t.SportID == sportID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) UpdateDetails(ctx context.Context, id string, details repositories.TeamUpdateDetails) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	if details.Name != nil {
		team.Name = *details.Name
	}
	if details.Color != nil {
		team.Color = *details.Color
	}
	return nil
}

func (r *fakeTeamRepo) UpdatePhotoKey(ctx context.Context, id string, photoKey *string) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.PhotoKey = photoKey
	return nil
}

func (r *fakeTeamRepo) ApplyStandingsDelta(ctx context.Context, exec repositories.SQLExecutor, id string, wins, losses, points int) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.Wins += wins
	team.Losses += losses
	team.Points += points
	return nil
}

type fakePlayerRepo struct {
	players map[string]*models.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[string]*models.Player)}
}

func (r *fakePlayerRepo) Create(ctx context.Context, player *models.Player) error {
	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	copied := *player
	r.players[player.ID] = &copied
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (r *fakePlayerRepo) GetAll(ctx context.Context) ([]models.Player, error) {
	out := make([]models.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePlayerRepo) ListByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	out := make([]models.Player, 0)
	for _, p := range r.players {
		if p.TeamID == teamID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) CountByTeam(ctx context.Context, teamID string) (int, error) {
	count := 0
	for _, p := range r.players {
		if p.TeamID == teamID {
			count++
		}
	}
	return count, nil
}

func (r *fakePlayerRepo) UpdateDetails(ctx context.Context, id string, details repositories.PlayerUpdateDetails) error {
	player, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	if details.Name != nil {
		player.Name = *details.Name
	}
	if details.Number != nil {
		player.Number = *details.Number
	}
	if details.Position != nil {
		player.Position = details.Position
	}
	return nil
}

func (r *fakePlayerRepo) UpdatePhotoKey(ctx context.Context, id string, photoKey *string) error {
	player, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	player.PhotoKey = photoKey
	return nil
}

func (r *fakePlayerRepo) ApplyStatsDelta(ctx context.Context, exec repositories.SQLExecutor, id string, points, goals, games int) error {
	player, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	player.TotalPoints += points
	player.TotalGoals += goals
	player.GamesPlayed += games
	return nil
}

type fakeMatchRepo struct {
	matches map[string]*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[string]*models.Match)}
}

func (r *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.Status == "" {
		match.Status = models.MatchStatusScheduled
	}
	copied := *match
	r.matches[match.ID] = &copied
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *fakeMatchRepo) GetAll(ctx context.Context) ([]models.Match, error) {
	out := make([]models.Match, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMatchRepo) ListBySport(ctx context.Context, sportID string) ([]models.Match, error) {
	out := make([]models.Match, 0)
	for _, m := range r.matches {
		if m.SportID == sportID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) ListByStatus(ctx context.Context, status models.MatchStatus) ([]models.Match, error) {
	out := make([]models.Match, 0)
	for _, m := range r.matches {
		if m.Status == status {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateScore(ctx context.Context, id string, team1Score, team2Score int) error {
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Team1Score = team1Score
	match.Team2Score = team2Score
	return nil
}

func (r *fakeMatchRepo) TransitionStatus(ctx context.Context, exec repositories.SQLExecutor, id string, from []models.MatchStatus, to models.MatchStatus) error {
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchStatusConflict
	}
	for _, status := range from {
		if match.Status == status {
			match.Status = to
			return nil
		}
	}
	return repositories.ErrMatchStatusConflict
}

func (r *fakeMatchRepo) CompleteMatch(ctx context.Context, exec repositories.SQLExecutor, id string, winnerID *string) error {
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchStatusConflict
	}
	if match.Status != models.MatchStatusLive {
		return repositories.ErrMatchStatusConflict
	}
	match.Status = models.MatchStatusCompleted
	match.WinnerID = winnerID
	return nil
}

type fakeMatchEventRepo struct {
	events []models.MatchEvent
}

func newFakeMatchEventRepo() *fakeMatchEventRepo {
	return &fakeMatchEventRepo{}
}

func (r *fakeMatchEventRepo) Create(ctx context.Context, event *models.MatchEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeMatchEventRepo) GetByID(ctx context.Context, id string) (*models.MatchEvent, error) {
	for i := range r.events {
		if r.events[i].ID == id {
			copied := r.events[i]
			return &copied, nil
		}
	}
	return nil, repositories.ErrMatchEventNotFound
}

func (r *fakeMatchEventRepo) ListByMatch(ctx context.Context, exec repositories.SQLExecutor, matchID string) ([]models.MatchEvent, error) {
	out := make([]models.MatchEvent, 0)
	for _, e := range r.events {
		if e.MatchID == matchID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return repositories.ErrUserUsernameConflict
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

type fakeUploader struct {
	uploaded []string
	deleted  []string
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	u.uploaded = append(u.uploaded, key)
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}
