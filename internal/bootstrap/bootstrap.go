package bootstrap

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	sessioninadapter "timelog/internal/modules/session/adapter/in"
	sessionoutadapter "timelog/internal/modules/session/adapter/out"
	sessiondto "timelog/internal/modules/session/dto"
	sessionout "timelog/internal/modules/session/port/out"
	sessionservice "timelog/internal/modules/session/service"
	sessionusecase "timelog/internal/modules/session/usecase"
	"timelog/internal/platform/clock"
	"timelog/internal/platform/config"
	"timelog/internal/platform/id"
	"timelog/internal/platform/logging"
	uiapp "timelog/internal/ui/app"
)

type App struct {
	SessionCLI sessioninadapter.CLIHandler
	Logger     hclog.Logger
}

// New wires the application from cfg. Log output goes to logOut.
func New(cfg config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(cfg.LogLevel, logOut)

	var notes sessionout.NoteStore
	if cfg.Notes {
		notes = sessionoutadapter.NewMarkdownNoteStore(cfg.NotesDir)
	}
	svc := sessionservice.NewSessionService(
		clock.SystemClock{},
		id.UUID{},
		sessionoutadapter.NewSQLiteRecordStore(cfg.DBPath),
		notes,
		sessionservice.Options{AllowIncomplete: cfg.AllowIncomplete, Logger: logger.Named("service")},
	)
	sessionUC := sessionusecase.NewInteractor(
		svc,
		sessionoutadapter.NewFileActiveSessionStore(cfg.ActivePath),
		logger.Named("session"),
	)
	return &App{
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		Logger:     logger,
	}, nil
}

func RunTUI(app *App, initial sessiondto.BeginInput) error {
	model := uiapp.NewModel(app.SessionCLI, initial)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
