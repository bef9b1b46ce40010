package providers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-foundation/framework/config"
	"github.com/km-arc/go-foundation/framework/container"
	"github.com/km-arc/go-foundation/framework/events"
	"github.com/km-arc/go-foundation/framework/logging"
	"github.com/km-arc/go-foundation/framework/providers"
)

func bootApp(t *testing.T) *container.Registry {
	t.Helper()
	r := container.New()
	reg := container.NewProviderRegistry(r)
	reg.Register(&providers.ConfigServiceProvider{EnvFiles: []string{"testdata/missing.env"}})
	reg.Register(&providers.LoggingServiceProvider{})
	reg.Register(&providers.EventServiceProvider{})
	reg.Boot()
	return r
}

func TestConfigProvider_BindsSingletonConfig(t *testing.T) {
	t.Setenv("APP_NAME", "provider-test")
	r := bootApp(t)

	cfg, err := container.Resolve[*config.Config](r, "config")
	require.NoError(t, err)
	assert.Equal(t, "provider-test", cfg.App.Name)

	again, err := container.Resolve[*config.Config](r, "config")
	require.NoError(t, err)
	require.Same(t, cfg, again)
}

func TestConfigProvider_AliasedAsConfiguration(t *testing.T) {
	r := bootApp(t)

	a, err := r.Make("config", nil)
	require.NoError(t, err)
	b, err := r.Make("configuration", nil)
	require.NoError(t, err)
	require.Same(t, a, b)
}

func TestLoggingProvider_DeferredUntilFirstUse(t *testing.T) {
	r := bootApp(t)

	logger, err := container.Resolve[*logging.Logger](r, "logger")
	require.NoError(t, err)
	require.NotNil(t, logger)

	again, err := container.Resolve[*logging.Logger](r, "logger")
	require.NoError(t, err)
	require.Same(t, logger, again)
}

func TestEventProvider_DispatcherCanResolveSubscribers(t *testing.T) {
	r := bootApp(t)

	d, err := container.Resolve[*events.Dispatcher](r, "events")
	require.NoError(t, err)

	var fired bool
	d.Listen("app.booted", func(string, any) error {
		fired = true
		return nil
	})
	require.NoError(t, d.Dispatch("app.booted", nil))
	assert.True(t, fired)
}
