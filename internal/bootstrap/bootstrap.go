package bootstrap

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	guideinadapter "ritualcoach/internal/modules/guide/adapter/in"
	guideoutadapter "ritualcoach/internal/modules/guide/adapter/out"
	guideusecase "ritualcoach/internal/modules/guide/usecase"
	progressinadapter "ritualcoach/internal/modules/progress/adapter/in"
	progressoutadapter "ritualcoach/internal/modules/progress/adapter/out"
	progressout "ritualcoach/internal/modules/progress/port/out"
	progressservice "ritualcoach/internal/modules/progress/service"
	progressusecase "ritualcoach/internal/modules/progress/usecase"
	reminderinadapter "ritualcoach/internal/modules/reminder/adapter/in"
	reminderoutadapter "ritualcoach/internal/modules/reminder/adapter/out"
	reminderservice "ritualcoach/internal/modules/reminder/service"
	reminderusecase "ritualcoach/internal/modules/reminder/usecase"
	ritualinadapter "ritualcoach/internal/modules/ritual/adapter/in"
	ritualoutadapter "ritualcoach/internal/modules/ritual/adapter/out"
	ritualdomain "ritualcoach/internal/modules/ritual/domain"
	ritualusecase "ritualcoach/internal/modules/ritual/usecase"
	timerinadapter "ritualcoach/internal/modules/timer/adapter/in"
	timerusecase "ritualcoach/internal/modules/timer/usecase"
	"ritualcoach/internal/platform/clock"
	"ritualcoach/internal/platform/config"
	apperrors "ritualcoach/internal/platform/errors"
	"ritualcoach/internal/platform/id"
	uiapp "ritualcoach/internal/ui/app"
)

type App struct {
	ProgressCLI progressinadapter.CLIHandler
	ProgressTUI progressinadapter.TUIHandler
	RitualCLI   ritualinadapter.CLIHandler
	RitualTUI   ritualinadapter.TUIHandler
	TimerCLI    timerinadapter.CLIHandler
	TimerTUI    timerinadapter.TUIHandler
	ReminderCLI reminderinadapter.CLIHandler
	GuideCLI    guideinadapter.CLIHandler
	GuideTUI    guideinadapter.TUIHandler

	closers []func() error
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := clock.SystemClock{}
	loc := cfg.Location

	store, closeStore, err := newKVStore(cfg)
	if err != nil {
		return nil, err
	}
	app := &App{}
	if closeStore != nil {
		app.closers = append(app.closers, closeStore)
	}

	progressUC := progressusecase.NewInteractor(
		progressservice.NewProgressService(clk, loc, store, logger.Named("progress")),
		id.UUID{},
	)

	progressBridge := ritualoutadapter.NewProgressBridge(progressUC)
	ritualUC := ritualusecase.NewInteractor(
		ritualoutadapter.NewYAMLFlowSource(cfg.FlowsPath),
		progressBridge,
		progressBridge,
		clk,
		loc,
		logger.Named("ritual"),
	)

	timerUC := timerusecase.NewInteractor(clk, cfg.TickInterval, logger.Named("timer"))

	reminderUC := reminderusecase.NewInteractor(
		reminderservice.NewScheduler(
			reminderoutadapter.NewProgressStatus(progressUC),
			reminderoutadapter.NewLogNotifier(logger),
			loc,
			logger.Named("scheduler"),
		),
		loc,
	)

	guideUC := guideusecase.NewInteractor(
		guideoutadapter.NewRitualFlows(ritualUC),
		guideoutadapter.NewFileStore(cfg.GuideDir),
		logger.Named("guide"),
	)

	app.ProgressCLI = progressinadapter.NewCLIHandler(progressUC)
	app.ProgressTUI = progressinadapter.NewTUIHandler(progressUC)
	app.RitualCLI = ritualinadapter.NewCLIHandler(ritualUC)
	app.RitualTUI = ritualinadapter.NewTUIHandler(ritualUC)
	app.TimerCLI = timerinadapter.NewCLIHandler(timerUC)
	app.TimerTUI = timerinadapter.NewTUIHandler(timerUC)
	app.ReminderCLI = reminderinadapter.NewCLIHandler(reminderUC)
	app.GuideCLI = guideinadapter.NewCLIHandler(guideUC)
	app.GuideTUI = guideinadapter.NewTUIHandler(guideUC)

	logger.Debug("application wired",
		zap.String("backend", cfg.Backend),
		zap.String("data_dir", cfg.DataDir),
		zap.String("time_zone", cfg.TimeZone),
	)
	return app, nil
}

// Close releases storage handles.
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newKVStore(cfg config.Config) (progressout.KVStore, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := progressoutadapter.NewSQLiteKVStore(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("new sqlite store: %w", err)
		}
		return store, store.Close, nil
	case config.BackendFile:
		return progressoutadapter.NewFileKVStore(cfg.StoreDir), nil, nil
	case config.BackendMemory:
		return progressoutadapter.NewMemoryKVStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownStorageKind, cfg.Backend)
	}
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.RitualTUI, app.TimerTUI, app.ProgressTUI, app.GuideTUI, ritualdomain.DefaultStepMinutes)
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if m, ok := final.(uiapp.Model); ok {
		m.Close()
	} else {
		model.Close()
	}
	return err
}
