package app

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	appconfig "github.com/doeshing/passgen/internal/application/config"
	"github.com/doeshing/passgen/internal/application/doctor"
	"github.com/doeshing/passgen/internal/application/generator"
	"github.com/doeshing/passgen/internal/application/history"
	"github.com/doeshing/passgen/internal/application/session"
	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/infrastructure/clipboard"
	"github.com/doeshing/passgen/internal/infrastructure/config"
	"github.com/doeshing/passgen/internal/infrastructure/storage"
	"github.com/doeshing/passgen/internal/pkg/logger"
	"github.com/doeshing/passgen/internal/ports"
)

// Options control how the container is built.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// Container wires up application services with infrastructure adapters.
// Construction is split so that commands which only touch the config file
// keep working when the file is invalid.
type Container struct {
	Options Options

	Logger         *logger.ZapLogger
	ConfigLoader   *config.FileLoader
	ConfigProvider ports.ConfigProvider

	Config        domain.Config
	Store         ports.KeyValueStore
	Generator     *generator.Service
	History       *history.Manager
	Clipboard     ports.Clipboard
	Fallback      ports.Clipboard
	DoctorService *doctor.Service

	once    sync.Once
	initErr error
}

// New returns a container with only the logger and config loader set.
func New(opts Options) *Container {
	c := &Container{}
	c.Configure(opts)
	return c
}

// Configure replaces the options. It has no effect after Init.
func (c *Container) Configure(opts Options) {
	c.Options = opts
	c.Logger = logger.NewZap(opts.Verbose)
	c.ConfigLoader = config.NewFileLoader(opts.ConfigPath)
	c.ConfigProvider = c.ConfigLoader
}

// BuildContainer constructs the full dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	c := New(opts)
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Init loads and validates the configuration and opens storage. It runs once;
// later calls return the first result.
func (c *Container) Init(ctx context.Context) error {
	c.once.Do(func() {
		c.initErr = c.build(ctx)
	})
	return c.initErr
}

func (c *Container) build(ctx context.Context) error {
	cfg, err := c.ConfigLoader.Load(ctx)
	if err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "load config %s", c.ConfigLoader.Path()),
			"run 'passgen config init --force' to rewrite the default file",
		)
	}
	if err := appconfig.Validate(cfg); err != nil {
		return errors.Wrapf(err, "config %s", c.ConfigLoader.Path())
	}
	c.Config = cfg

	store, err := storage.Open(cfg.History, c.Logger)
	if err != nil {
		return errors.Wrap(err, "open history storage")
	}
	c.Store = store

	c.Generator = generator.New(cfg, c.Logger)
	c.History = history.NewManager(store, c.Logger, history.WithKey(cfg.History.Key))

	if cfg.Clipboard.Enabled {
		c.Clipboard = clipboard.NewSystem()
		if cfg.Clipboard.OSC52Fallback {
			c.Fallback = clipboard.NewOSC52()
		}
	}

	c.DoctorService = &doctor.Service{
		ConfigProvider: c.ConfigProvider,
		Validate:       appconfig.Validate,
		Store:          store,
		HistoryKey:     cfg.History.Key,
		Clipboard:      c.Clipboard,
		Fallback:       c.Fallback,
	}

	c.Logger.Debug("container ready", map[string]interface{}{
		"config":  c.ConfigLoader.Path(),
		"backend": cfg.History.Backend,
		"store":   store.Location(),
	})
	return nil
}

// NewSession starts a session controller over the initialized services.
func (c *Container) NewSession(ctx context.Context) (*session.Controller, error) {
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	deps := session.Deps{
		Generator: c.Generator,
		History:   c.History,
		Logger:    c.Logger,
	}
	if c.Clipboard != nil {
		deps.Clipboard = c.Clipboard
	}
	if c.Fallback != nil {
		deps.Fallback = c.Fallback
	}
	ctrl := session.NewController(ctx, deps)
	ctrl.RecordHistory = c.Config.History.Enabled
	return ctrl, nil
}

// ConfiguredHistory returns a manager over the configured backend even when
// recording is disabled, so previously stored passwords can still be wiped.
// The returned store must be closed when it is not the container's own.
func (c *Container) ConfiguredHistory(ctx context.Context) (*history.Manager, ports.KeyValueStore, error) {
	if err := c.Init(ctx); err != nil {
		return nil, nil, err
	}
	if c.Config.History.Enabled {
		return c.History, nil, nil
	}
	settings := c.Config.History
	settings.Enabled = true
	store, err := storage.Open(settings, c.Logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open history storage")
	}
	return history.NewManager(store, c.Logger, history.WithKey(settings.Key)), store, nil
}

// Close releases storage and flushes logs.
func (c *Container) Close() error {
	var err error
	if c.Store != nil {
		err = c.Store.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return err
}
