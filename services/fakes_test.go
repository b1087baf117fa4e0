package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/livetournois/tournament-manager/models"
	"github.com/livetournois/tournament-manager/repositories"
)

// In-memory repository fakes. They reproduce the error contract of the
// postgres implementations (sentinel errors, conflict detection) so the
// services can be exercised without a database.

type fakeRegistrationRepo struct {
	nextID int
	rows   []models.Registration
}

func (f *fakeRegistrationRepo) Create(_ context.Context, registration *models.Registration) error {
	for _, row := range f.rows {
		if row.TournamentID == registration.TournamentID && row.TeamID == registration.TeamID {
			return repositories.ErrRegistrationConflict
		}
	}
	f.nextID++
	registration.ID = f.nextID
	registration.Seed = 0
	registration.CreatedAt = time.Now().UTC()
	f.rows = append(f.rows, *registration)
	return nil
}

func (f *fakeRegistrationRepo) Update(_ context.Context, registration *models.Registration) error {
	for i, row := range f.rows {
		if row.TournamentID == registration.TournamentID && row.TeamID == registration.TeamID {
			f.rows[i].Status = registration.Status
			f.rows[i].Seed = 0
			registration.Seed = 0
			return nil
		}
	}
	return repositories.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) Delete(_ context.Context, tournamentID, teamID int) error {
	for i, row := range f.rows {
		if row.TournamentID == tournamentID && row.TeamID == teamID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) GetByTournamentAndTeam(_ context.Context, tournamentID, teamID int) (*models.Registration, error) {
	for _, row := range f.rows {
		if row.TournamentID == tournamentID && row.TeamID == teamID {
			result := row
			return &result, nil
		}
	}
	return nil, repositories.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Registration, error) {
	result := make([]models.Registration, 0)
	for _, row := range f.rows {
		if row.TournamentID == tournamentID {
			result = append(result, row)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seed < result[j].Seed })
	return result, nil
}

func (f *fakeRegistrationRepo) ListByTeam(_ context.Context, teamID int) ([]models.Registration, error) {
	result := make([]models.Registration, 0)
	for _, row := range f.rows {
		if row.TeamID == teamID {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeRegistrationRepo) ListAll(_ context.Context) ([]models.Registration, error) {
	return append([]models.Registration(nil), f.rows...), nil
}

func (f *fakeRegistrationRepo) Exists(_ context.Context, tournamentID, teamID int) (bool, error) {
	for _, row := range f.rows {
		if row.TournamentID == tournamentID && row.TeamID == teamID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRegistrationRepo) CountByTournament(_ context.Context, tournamentID int) (int, error) {
	count := 0
	for _, row := range f.rows {
		if row.TournamentID == tournamentID {
			count++
		}
	}
	return count, nil
}

type fakeTournamentRepo struct {
	nextID int
	rows   map[int]models.Tournament
	regs   *fakeRegistrationRepo
}

func newFakeTournamentRepo(regs *fakeRegistrationRepo) *fakeTournamentRepo {
	return &fakeTournamentRepo{rows: make(map[int]models.Tournament), regs: regs}
}

func (f *fakeTournamentRepo) Create(_ context.Context, tournament *models.Tournament) error {
	f.nextID++
	tournament.ID = f.nextID
	f.rows[tournament.ID] = *tournament
	return nil
}

func (f *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &row, nil
}

func (f *fakeTournamentRepo) List(_ context.Context) ([]models.Tournament, error) {
	result := make([]models.Tournament, 0, len(f.rows))
	for _, row := range f.rows {
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeTournamentRepo) ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error) {
	all, _ := f.List(ctx)
	result := make([]models.Tournament, 0)
	for _, row := range all {
		if row.Status == status {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeTournamentRepo) ListUpcoming(ctx context.Context) ([]models.Tournament, error) {
	all, _ := f.List(ctx)
	result := make([]models.Tournament, 0)
	for _, row := range all {
		if row.StartDate.After(time.Now()) {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeTournamentRepo) Update(_ context.Context, tournament *models.Tournament) error {
	if _, ok := f.rows[tournament.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	f.rows[tournament.ID] = *tournament
	return nil
}

func (f *fakeTournamentRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeTournamentRepo) CountRegistrations(ctx context.Context, tournamentID int) (int, error) {
	return f.regs.CountByTournament(ctx, tournamentID)
}

type fakeTeamRepo struct {
	nextID  int
	rows    map[int]models.Team
	players *fakePlayerRepo
	regs    *fakeRegistrationRepo
}

func newFakeTeamRepo(players *fakePlayerRepo, regs *fakeRegistrationRepo) *fakeTeamRepo {
	return &fakeTeamRepo{rows: make(map[int]models.Team), players: players, regs: regs}
}

func (f *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	for _, row := range f.rows {
		if row.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	f.nextID++
	team.ID = f.nextID
	f.rows[team.ID] = *team
	return nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &row, nil
}

func (f *fakeTeamRepo) GetByIDWithPlayers(ctx context.Context, id int) (*models.Team, error) {
	team, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.players != nil {
		team.Players, _ = f.players.ListByTeam(ctx, id)
	}
	return team, nil
}

func (f *fakeTeamRepo) List(_ context.Context) ([]models.Team, error) {
	result := make([]models.Team, 0, len(f.rows))
	for _, row := range f.rows {
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeTeamRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	result := make([]models.Team, 0)
	if f.regs == nil {
		return result, nil
	}
	rows, _ := f.regs.ListByTournament(ctx, tournamentID)
	for _, registration := range rows {
		if team, ok := f.rows[registration.TeamID]; ok {
			result = append(result, team)
		}
	}
	return result, nil
}

func (f *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	if _, ok := f.rows[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	f.rows[team.ID] = *team
	return nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeTeamRepo) UpdateLogoKey(_ context.Context, teamID int, logoKey *string) error {
	row, ok := f.rows[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	row.LogoKey = logoKey
	f.rows[teamID] = row
	return nil
}

type fakePlayerRepo struct {
	nextID int
	rows   map[int]models.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{rows: make(map[int]models.Player)}
}

func (f *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	f.nextID++
	player.ID = f.nextID
	f.rows[player.ID] = *player
	return nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &row, nil
}

func (f *fakePlayerRepo) List(_ context.Context) ([]models.Player, error) {
	result := make([]models.Player, 0, len(f.rows))
	for _, row := range f.rows {
		result = append(result, row)
	}
	return result, nil
}

func (f *fakePlayerRepo) ListByTeam(_ context.Context, teamID int) ([]models.Player, error) {
	result := make([]models.Player, 0)
	for _, row := range f.rows {
		if row.TeamID != nil && *row.TeamID == teamID {
			result = append(result, row)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Handle < result[j].Handle })
	return result, nil
}

func (f *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	if _, ok := f.rows[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	f.rows[player.ID] = *player
	return nil
}

func (f *fakePlayerRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakePlayerRepo) ClearTeam(_ context.Context, playerID int) error {
	row, ok := f.rows[playerID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	row.TeamID = nil
	f.rows[playerID] = row
	return nil
}

type fakeAssignmentRepo struct {
	nextID int
	rows   []models.Assignment
}

func (f *fakeAssignmentRepo) Create(_ context.Context, assignment *models.Assignment) error {
	f.nextID++
	assignment.ID = f.nextID
	f.rows = append(f.rows, *assignment)
	return nil
}

func (f *fakeAssignmentRepo) Delete(_ context.Context, staffID, tournamentID int) error {
	for i, row := range f.rows {
		if row.StaffID == staffID && row.TournamentID == tournamentID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrAssignmentNotFound
}

func (f *fakeAssignmentRepo) GetByStaffAndTournament(_ context.Context, staffID, tournamentID int) (*models.Assignment, error) {
	for _, row := range f.rows {
		if row.StaffID == staffID && row.TournamentID == tournamentID {
			result := row
			return &result, nil
		}
	}
	return nil, repositories.ErrAssignmentNotFound
}

func (f *fakeAssignmentRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Assignment, error) {
	result := make([]models.Assignment, 0)
	for _, row := range f.rows {
		if row.TournamentID == tournamentID {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeAssignmentRepo) ListByStaff(_ context.Context, staffID int) ([]models.Assignment, error) {
	result := make([]models.Assignment, 0)
	for _, row := range f.rows {
		if row.StaffID == staffID {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeAssignmentRepo) ListAll(_ context.Context) ([]models.Assignment, error) {
	return append([]models.Assignment(nil), f.rows...), nil
}

type fakeUserRepo struct {
	nextID int
	rows   map[int]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: make(map[int]models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, row := range f.rows {
		if row.Handle == user.Handle {
			return repositories.ErrUserHandleConflict
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now().UTC()
	f.rows[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &row, nil
}

func (f *fakeUserRepo) GetByHandle(_ context.Context, handle string) (*models.User, error) {
	for _, row := range f.rows {
		if row.Handle == handle {
			result := row
			return &result, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	result := make([]models.User, 0, len(f.rows))
	for _, row := range f.rows {
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Handle < result[j].Handle })
	return result, nil
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	all, _ := f.List(ctx)
	result := make([]models.User, 0)
	for _, row := range all {
		if row.Role == role {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := f.rows[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	for _, row := range f.rows {
		if row.Handle == user.Handle && row.ID != user.ID {
			return repositories.ErrUserHandleConflict
		}
	}
	stored := f.rows[user.ID]
	user.CreatedAt = stored.CreatedAt
	f.rows[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id int, at time.Time) error {
	row, ok := f.rows[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	row.LastLogin = &at
	f.rows[id] = row
	return nil
}

type fakeGameRepo struct {
	nextID int
	rows   map[int]models.Game
	inUse  map[int]bool
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{rows: make(map[int]models.Game), inUse: make(map[int]bool)}
}

func (f *fakeGameRepo) Create(_ context.Context, game *models.Game) error {
	f.nextID++
	game.ID = f.nextID
	f.rows[game.ID] = *game
	return nil
}

func (f *fakeGameRepo) GetByID(_ context.Context, id int) (*models.Game, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	return &row, nil
}

func (f *fakeGameRepo) List(_ context.Context) ([]models.Game, error) {
	result := make([]models.Game, 0, len(f.rows))
	for _, row := range f.rows {
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeGameRepo) Update(_ context.Context, game *models.Game) error {
	if _, ok := f.rows[game.ID]; !ok {
		return repositories.ErrGameNotFound
	}
	f.rows[game.ID] = *game
	return nil
}

func (f *fakeGameRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrGameNotFound
	}
	if f.inUse[id] {
		return repositories.ErrGameInUse
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeGameRepo) SearchByName(ctx context.Context, name string) ([]models.Game, error) {
	all, _ := f.List(ctx)
	result := make([]models.Game, 0)
	for _, row := range all {
		if strings.Contains(strings.ToUpper(row.Name), strings.ToUpper(name)) {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeGameRepo) ListByGenre(ctx context.Context, genre string) ([]models.Game, error) {
	all, _ := f.List(ctx)
	result := make([]models.Game, 0)
	for _, row := range all {
		if row.Genre == genre {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeGameRepo) ListGenres(ctx context.Context) ([]string, error) {
	all, _ := f.List(ctx)
	seen := make(map[string]bool)
	genres := make([]string, 0)
	for _, row := range all {
		if row.Genre != "" && !seen[row.Genre] {
			seen[row.Genre] = true
			genres = append(genres, row.Genre)
		}
	}
	sort.Strings(genres)
	return genres, nil
}

type fakeStaffRepo struct {
	nextID int
	rows   map[int]models.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{rows: make(map[int]models.Staff)}
}

func (f *fakeStaffRepo) Create(_ context.Context, staff *models.Staff) error {
	f.nextID++
	staff.ID = f.nextID
	f.rows[staff.ID] = *staff
	return nil
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id int) (*models.Staff, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrStaffNotFound
	}
	return &row, nil
}

func (f *fakeStaffRepo) GetByPhone(_ context.Context, phone string) (*models.Staff, error) {
	for _, row := range f.rows {
		if row.Phone == phone {
			result := row
			return &result, nil
		}
	}
	return nil, repositories.ErrStaffNotFound
}

func (f *fakeStaffRepo) List(_ context.Context) ([]models.Staff, error) {
	result := make([]models.Staff, 0, len(f.rows))
	for _, row := range f.rows {
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Surname != result[j].Surname {
			return result[i].Surname < result[j].Surname
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (f *fakeStaffRepo) ListByFunction(ctx context.Context, function string) ([]models.Staff, error) {
	all, _ := f.List(ctx)
	result := make([]models.Staff, 0)
	for _, row := range all {
		if row.Function == function {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeStaffRepo) ListByTournament(_ context.Context, _ int) ([]models.Staff, error) {
	return nil, nil
}

func (f *fakeStaffRepo) Search(ctx context.Context, criterion string) ([]models.Staff, error) {
	all, _ := f.List(ctx)
	needle := strings.ToLower(criterion)
	result := make([]models.Staff, 0)
	for _, row := range all {
		haystack := strings.ToLower(row.Name + " " + row.Surname + " " + row.Email + " " + row.Function)
		if strings.Contains(haystack, needle) {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeStaffRepo) Update(_ context.Context, staff *models.Staff) error {
	if _, ok := f.rows[staff.ID]; !ok {
		return repositories.ErrStaffNotFound
	}
	f.rows[staff.ID] = *staff
	return nil
}

func (f *fakeStaffRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrStaffNotFound
	}
	delete(f.rows, id)
	return nil
}

var (
	_ repositories.RegistrationRepository = (*fakeRegistrationRepo)(nil)
	_ repositories.TournamentRepository   = (*fakeTournamentRepo)(nil)
	_ repositories.TeamRepository         = (*fakeTeamRepo)(nil)
	_ repositories.PlayerRepository       = (*fakePlayerRepo)(nil)
	_ repositories.AssignmentRepository   = (*fakeAssignmentRepo)(nil)
	_ repositories.UserRepository         = (*fakeUserRepo)(nil)
	_ repositories.GameRepository         = (*fakeGameRepo)(nil)
	_ repositories.StaffRepository        = (*fakeStaffRepo)(nil)
)
