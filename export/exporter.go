// Package export produces printable PDF documents from tournament and
// team records.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/livetournois/tournament-manager/models"
	"github.com/livetournois/tournament-manager/services"
)

// bulkWorkers caps concurrent document renders during a bulk export.
const bulkWorkers = 4

type Exporter struct {
	tournaments   *services.TournamentService
	teams         *services.TeamService
	registrations *services.RegistrationService
	logger        *slog.Logger
}

func NewExporter(
	tournaments *services.TournamentService,
	teams *services.TeamService,
	registrations *services.RegistrationService,
	logger *slog.Logger,
) *Exporter {
	return &Exporter{
		tournaments:   tournaments,
		teams:         teams,
		registrations: registrations,
		logger:        logger,
	}
}

// TournamentRoster writes the roster document for one tournament to
// the given path.
func (e *Exporter) TournamentRoster(ctx context.Context, tournamentID int, path string) error {
	tournament, err := e.tournaments.GetByID(ctx, tournamentID)
	if err != nil {
		return err
	}
	registrations, err := e.registrations.ListByTournament(ctx, tournamentID)
	if err != nil {
		return err
	}
	return writeDocument(path, func(f *os.File) error {
		return WriteTournamentRoster(f, tournament, registrations)
	})
}

// TeamSheet writes the fact sheet for one team to the given path.
func (e *Exporter) TeamSheet(ctx context.Context, teamID int, path string) error {
	team, err := e.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	return writeDocument(path, func(f *os.File) error {
		return WriteTeamSheet(f, team)
	})
}

// PlayerSheets renders one fact sheet per player of the team into
// dir, a few at a time.
func (e *Exporter) PlayerSheets(ctx context.Context, teamID int, dir string) error {
	team, err := e.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(bulkWorkers)

	for _, player := range team.Players {
		p := player
		group.Go(func() error {
			path := filepath.Join(dir, fmt.Sprintf("player-%d.pdf", p.ID))
			err := writeDocument(path, func(f *os.File) error {
				return WritePlayerSheet(f, &p, team)
			})
			if err != nil {
				return fmt.Errorf("export sheet for %q: %w", p.Handle, err)
			}
			return nil
		})
	}
	return group.Wait()
}

// AllRosters renders a roster for every tournament into dir, a few at
// a time. One failed render fails the whole export.
func (e *Exporter) AllRosters(ctx context.Context, dir string) error {
	tournaments, err := e.tournaments.List(ctx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(bulkWorkers)

	for _, tournament := range tournaments {
		t := tournament
		group.Go(func() error {
			path := filepath.Join(dir, documentName(t))
			if err := e.TournamentRoster(ctx, t.ID, path); err != nil {
				return fmt.Errorf("export roster for %q: %w", t.Name, err)
			}
			e.logger.Info("exported tournament roster",
				slog.Int("tournament_id", t.ID),
				slog.String("path", path),
			)
			return nil
		})
	}
	return group.Wait()
}

func writeDocument(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create document %s: %w", path, err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

// documentName builds a filesystem-safe file name from the tournament
// name.
func documentName(t models.Tournament) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		}
		return -1
	}, strings.TrimSpace(t.Name))
	if name == "" {
		name = "tournament"
	}
	return fmt.Sprintf("%s-%d.pdf", strings.ToLower(name), t.ID)
}
