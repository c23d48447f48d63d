package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Rorical/MiLista/internal/config"
	"github.com/Rorical/MiLista/internal/core"
	"github.com/Rorical/MiLista/internal/decoder"
	"github.com/Rorical/MiLista/internal/dispatcher"
	"github.com/Rorical/MiLista/internal/eventbus"
	"github.com/Rorical/MiLista/internal/lookup"
	"github.com/Rorical/MiLista/internal/models"
)

// Options select the flow the application runs.
type Options struct {
	Mode   models.Mode
	Logger *zap.Logger
}

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	logger     *zap.Logger
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.ShoppingService
	model      *AppModel
}

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	help       help.Model
	spinner    spinner.Model
}

func NewApplication(cfg *config.Config, opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store, ok := lookup.FindStore(cfg.GetStore())
	if !ok {
		return nil, fmt.Errorf("unknown store %q", cfg.GetStore())
	}

	format, ok := decoder.ParseSymbology(cfg.Scanner.AssumeFormat)
	if !ok {
		return nil, fmt.Errorf("unknown scanner format %q", cfg.Scanner.AssumeFormat)
	}

	client := lookup.NewClient(cfg.GetBaseURL(),
		lookup.WithTimeout(cfg.LookupTimeout()),
		lookup.WithConcurrency(cfg.Lookup.Concurrency),
		lookup.WithLogger(logger.Named("lookup")),
	)
	device := decoder.NewFileDevice(cfg.Scanner.Device, decoder.Options{
		Frequency:    cfg.Scanner.Frequency,
		AssumeFormat: format,
		Logger:       logger.Named("decoder"),
	})

	// Create event bus
	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(err eventbus.EventBusError) {
		logger.Warn("event bus error", zap.String("operation", err.Operation), zap.Error(err.Err))
	})

	service, err := core.NewShoppingService(core.Options{
		Mode:   opts.Mode,
		Store:  store,
		Device: device,
		Lookup: client,
		Logger: logger.Named("core"),
	}, eb)
	if err != nil {
		eb.Close()
		return nil, fmt.Errorf("failed to initialize shopping service: %w", err)
	}

	disp := dispatcher.NewEventDispatcher(eb)
	logger.Info("application ready",
		zap.String("mode", opts.Mode.String()),
		zap.String("store", store.ID),
		zap.String("api", client.BaseURL()),
		zap.String("device", cfg.Scanner.Device))

	return &Application{
		config:     cfg,
		logger:     logger,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      newAppModel(disp, opts.Mode, store),
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (app *Application) Stop() {
	app.dispatcher.Stop()
	app.service.Stop()
	app.eventBus.Close()
	_ = app.logger.Sync()
}

func newAppModel(disp *dispatcher.EventDispatcher, mode models.Mode, store lookup.Store) *AppModel {
	// Items arrive with the first snapshot; the core is the single source of truth.
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &AppModel{
		appModel: models.AppModel{
			Mode:      mode,
			StoreName: store.Name,
			Status:    "Ready",
			Width:     80,
		},
		dispatcher: disp,
		help:       help.New(),
		spinner:    s,
	}
}
