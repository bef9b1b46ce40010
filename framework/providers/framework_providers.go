package providers

import (
	"github.com/km-arc/go-foundation/framework/config"
	"github.com/km-arc/go-foundation/framework/container"
	"github.com/km-arc/go-foundation/framework/events"
	"github.com/km-arc/go-foundation/framework/logging"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the registry as "config".
//
// Bound abstracts:
//   - "config"  → *config.Config
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Registry) {
	envFiles := p.EnvFiles
	app.BindSingleton("config", func(r *container.Registry, _ map[string]any) (any, error) {
		return config.Load(envFiles...), nil
	})
	app.Alias("config", "configuration")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider registers the structured logger. Deferred: the
// logger is built on first Make("logger").
//
// Bound abstracts:
//   - "logger"  → *logging.Logger
//
// Laravel equivalent:
//
//	// Illuminate\Log\LogServiceProvider
//	$app->singleton('log', fn($app) => new LogManager($app));
type LoggingServiceProvider struct {
	container.BaseProvider
}

func (p *LoggingServiceProvider) Register(app *container.Registry) {
	app.BindSingleton("logger", func(r *container.Registry, _ map[string]any) (any, error) {
		cfg, err := container.Resolve[*config.Config](r, "config")
		if err != nil {
			return nil, err
		}
		return logging.New(cfg), nil
	})
}

func (p *LoggingServiceProvider) IsDeferred() bool   { return true }
func (p *LoggingServiceProvider) Provides() []string { return []string{"logger"} }

// ── EventServiceProvider ──────────────────────────────────────────────────────

// EventServiceProvider registers the event bus.
//
// Bound abstracts:
//   - "events"  → *events.Dispatcher
//
// Laravel equivalent:
//
//	// Illuminate\Events\EventServiceProvider
//	$app->singleton('events', fn($app) => new Dispatcher($app));
type EventServiceProvider struct {
	container.BaseProvider
}

func (p *EventServiceProvider) Register(app *container.Registry) {
	app.BindSingleton("events", func(r *container.Registry, _ map[string]any) (any, error) {
		return events.NewWithRegistry(r), nil
	})
}
