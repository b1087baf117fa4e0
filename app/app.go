// Package app wires the application together: database, repositories,
// services, session and exporter behind a single constructor for the
// embedding frontend to use.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/livetournois/tournament-manager/config"
	"github.com/livetournois/tournament-manager/db"
	"github.com/livetournois/tournament-manager/export"
	"github.com/livetournois/tournament-manager/repositories"
	"github.com/livetournois/tournament-manager/services"
	"github.com/livetournois/tournament-manager/session"
	"github.com/livetournois/tournament-manager/storage"
)

const connectTimeout = 5 * time.Second

type App struct {
	Tournaments   *services.TournamentService
	Teams         *services.TeamService
	Registrations *services.RegistrationService
	Staff         *services.StaffService
	Games         *services.GameService
	Users         *services.UserService
	Auth          *services.AuthService
	Session       *session.Session
	Exporter      *export.Exporter

	database *sql.DB
}

// New builds a fully wired application from the configuration. The
// returned App owns the database handle; call Close when done.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, connectTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	var uploader storage.FileUploader
	if cfg.R2 != nil {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("configure logo storage: %w", err)
		}
	} else {
		logger.Info("logo storage not configured, uploads disabled")
	}

	tournamentRepo := repositories.NewPostgresTournamentRepository(database)
	teamRepo := repositories.NewPostgresTeamRepository(database)
	playerRepo := repositories.NewPostgresPlayerRepository(database)
	registrationRepo := repositories.NewPostgresRegistrationRepository(database)
	staffRepo := repositories.NewPostgresStaffRepository(database)
	assignmentRepo := repositories.NewPostgresAssignmentRepository(database)
	gameRepo := repositories.NewPostgresGameRepository(database)
	userRepo := repositories.NewPostgresUserRepository(database)

	tournaments := services.NewTournamentService(tournamentRepo, teamRepo, registrationRepo, assignmentRepo)
	teams := services.NewTeamService(teamRepo, playerRepo, uploader)
	registrations := services.NewRegistrationService(registrationRepo)
	staff := services.NewStaffService(staffRepo, userRepo, assignmentRepo, logger)

	return &App{
		Tournaments:   tournaments,
		Teams:         teams,
		Registrations: registrations,
		Staff:         staff,
		Games:         services.NewGameService(gameRepo),
		Users:         services.NewUserService(userRepo),
		Auth:          services.NewAuthService(userRepo, logger),
		Session:       session.New(),
		Exporter:      export.NewExporter(tournaments, teams, registrations, logger),
		database:      database,
	}, nil
}

func (a *App) Close() error {
	return a.database.Close()
}
