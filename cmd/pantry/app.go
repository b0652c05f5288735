package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/auth"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/classifier"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/config"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/interpreter"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/inventory"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/remote/fake"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/resolver"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/session"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/storage"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/storage/sqlite"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/pkg/logging"
)

// fakeHouseName is the house seeded when running against the in-memory backend.
const fakeHouseName = "Home"

// App wires the inventory core for one CLI invocation.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	Store   storage.Store
	Session *session.Session
	API     remote.API

	Houses      *inventory.Houses
	Inventory   *inventory.Repository
	Classifier  *classifier.Classifier
	Interpreter *interpreter.Interpreter
}

// NewApp loads the configuration and builds every component. backend, when
// set, overrides the configured backend.
func NewApp(configPath, backend string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if backend != "" {
		cfg.Backend = backend
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger := logging.Setup(cfg.LogLevel)
	a := &App{Config: cfg, Logger: logger}

	switch cfg.Backend {
	case config.BackendFake:
		// The fake keeps no state between runs, so neither does the session.
		a.Store = storage.NewMemoryStore()
		a.Session = session.New(a.Store)
		a.API = fake.New()
	default:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open local store: %w", err)
		}
		a.Store = store
		a.Session = session.New(store)

		client, err := remote.New(cfg.Endpoint, a.Session,
			remote.WithHTTPTimeout(cfg.HTTPTimeout),
			remote.WithReadAttempts(cfg.ReadAttempts),
			remote.WithRetryInterval(cfg.RetryInterval),
			remote.WithLogger(logger),
			remote.WithDebugLogging(cfg.DebugHTTP),
		)
		if err != nil {
			store.Close()
			return nil, err
		}
		a.API = client
	}

	kitchens := resolver.NewKitchenResolver(a.API, a.Store, logger)
	a.Houses = inventory.NewHouses(a.API, a.Session, logger)
	a.Inventory = inventory.NewRepository(a.API, a.Session, kitchens, logger)

	var ai classifier.AIStep
	if cfg.AIClassification {
		ai = classifier.NewRemoteAI(a.API)
	}
	a.Classifier = classifier.New(ai, logger)
	a.Interpreter = interpreter.New(a.API, a.Inventory, interpreter.NewGuard(), logger)

	if cfg.Backend == config.BackendFake {
		if err := a.seedFake(context.Background()); err != nil {
			a.Close()
			return nil, err
		}
	}

	slog.Debug("App initialized", "backend", cfg.Backend, "endpoint", cfg.Endpoint)
	return a, nil
}

// seedFake signs in a dev user and selects a house so that every command can
// run against the in-memory backend.
func (a *App) seedFake(ctx context.Context) error {
	token, err := a.devToken("dev-user", "")
	if err != nil {
		return err
	}
	if err := a.Session.SetToken(ctx, token); err != nil {
		return err
	}
	house, err := a.Houses.Create(ctx, inventory.CreateHouseInput{Name: fakeHouseName})
	if err != nil {
		return fmt.Errorf("seed house: %w", err)
	}
	return a.Houses.Select(ctx, *house)
}

// devToken signs a token with the dev server secret.
func (a *App) devToken(userID, email string) (string, error) {
	dev := a.Config.DevServer
	return auth.NewJWTManager(dev.JWTSecret, dev.TokenTTL).Generate(userID, email)
}

// Close releases the local store.
func (a *App) Close() error {
	return a.Store.Close()
}
