// Package server initializes and runs the game server.
// It configures storage, wires the domain services together, starts the
// background decay scheduler, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/vpavlenko/signalwars/internal/logging"
	"github.com/vpavlenko/signalwars/internal/server/api"
	"github.com/vpavlenko/signalwars/internal/server/auth"
	"github.com/vpavlenko/signalwars/internal/server/broadcast"
	"github.com/vpavlenko/signalwars/internal/server/config"
	"github.com/vpavlenko/signalwars/internal/server/credentials"
	"github.com/vpavlenko/signalwars/internal/server/hacking"
	"github.com/vpavlenko/signalwars/internal/server/notify"
	"github.com/vpavlenko/signalwars/internal/server/rounds"
	"github.com/vpavlenko/signalwars/internal/server/scheduler"
	"github.com/vpavlenko/signalwars/internal/server/shared/db"
	signalctl "github.com/vpavlenko/signalwars/internal/server/signal"
	"github.com/vpavlenko/signalwars/internal/server/stations"
)

type App struct {
	config            *config.Config
	logger            logging.Logger
	hub               *broadcast.Hub
	gate              *auth.Gate
	stationService    *stations.Service
	roundService      *rounds.Service
	credentialService *credentials.Service
	hackService       *hacking.Service
	commandSurface    *api.API
	decayScheduler    *scheduler.DecayScheduler
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	rm, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hub := broadcast.NewHub(logger)
	gate := auth.NewGate(rm.Identities(), cfg)

	var reporter notify.Reporter = notify.NoopReporter{}
	if cfg.NotifyEndpoint != "" {
		reporter = notify.NewHTTPReporter(cfg.NotifyEndpoint)
	}

	engine := signalctl.NewEngine(signalctl.ParamsFromConfig(cfg), rm.Stations(), reporter, logger)

	stationService := stations.NewService(rm.Stations(), cfg)
	roundService := rounds.NewService(rm.Rounds(), rm.Stations(), hub, cfg, logger)
	credentialService := credentials.NewService(rm.Credentials(), logger)

	rnd := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	hackService := hacking.NewService(gate, rm.HackSessions(), credentialService, engine, hub, cfg, logger, rnd)

	commandSurface := api.New(gate, stationService, roundService, rm.Teams(), credentialService, hub, logger)

	decayScheduler := scheduler.New(cfg.SignalResetTimeout, rm.Rounds(), rm.Stations(), engine, hub, logger)

	return &App{
		config:            cfg,
		logger:            logger,
		hub:               hub,
		gate:              gate,
		stationService:    stationService,
		roundService:      roundService,
		credentialService: credentialService,
		hackService:       hackService,
		commandSurface:    commandSurface,
		decayScheduler:    decayScheduler,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.roundService.EnsureExists(ctx); err != nil {
		app.logger.Error(ctx, "round bootstrap failed", "error", err.Error())
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.decayScheduler.Run(ctx)
	}()

	wg.Wait()
}

// API exposes the authorized command surface for transports built on top of
// the app.
func (app *App) API() *api.API {
	return app.commandSurface
}

func (app *App) Hacks() *hacking.Service {
	return app.hackService
}

func (app *App) Hub() *broadcast.Hub {
	return app.hub
}
