package container

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Every provider must implement at minimum Register().
// Boot() is called after ALL providers have been registered, making it safe
// to resolve other bindings inside Boot().
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Registry) {
//	    app.BindSingleton("logger", func(r *container.Registry, _ map[string]any) (any, error) {
//	        cfg, err := container.Resolve[*config.Config](r, "config")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return logging.New(cfg), nil
//	    })
//	}
type ServiceProvider interface {
	// Register binds services into the registry.
	// Do NOT resolve other bindings here — use Boot() for that.
	Register(app *Registry)

	// Boot is called after all providers are registered.
	// Safe to resolve and use any binding here.
	Boot(app *Registry)

	// Provides returns the list of abstract keys this provider registers.
	// Used for deferred (lazy) provider loading.
	// Return nil / empty slice if the provider is always eager.
	Provides() []string

	// IsDeferred returns true if this provider should be loaded lazily —
	// only when one of its Provides() abstracts is first resolved.
	//
	//	// Laravel: protected $defer = true;
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
// Embed it in your provider and only override what you need.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Registry)   {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
//
// It mirrors the behaviour of Laravel's Application::registerConfiguredProviders
// and Application::bootProviders.
type ProviderRegistry struct {
	app        *Registry
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // abstract → provider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a provider registry bound to app.
func NewProviderRegistry(app *Registry) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method (unless deferred).
//
//	// Laravel: $app->register(new AppServiceProvider($app))
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, abstract := range provider.Provides() {
			r.deferred[abstract] = provider
		}
		r.interceptDeferred(provider)
		return
	}

	provider.Register(r.app)
	r.eager = append(r.eager, provider)

	// If already booted, boot this provider immediately
	if r.booted {
		provider.Boot(r.app)
	}
}

// interceptDeferred registers a lazy binding for each deferred abstract.
// The first Make() call triggers real registration + boot.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	for _, abstract := range provider.Provides() {
		abs := abstract // capture
		r.app.Bind(abs, Factory(func(c *Registry, params map[string]any) (any, error) {
			if _, pending := r.deferred[abs]; pending {
				provider.Register(c)
				for _, provided := range provider.Provides() {
					delete(r.deferred, provided)
				}
				if r.booted {
					provider.Boot(c)
				}
			}
			// The inner Make resolves through the provider's real binding
			// and runs the extender and callback pass there. Wrap the
			// result so the interception binding does not run it again.
			instance, err := c.Make(abs, params)
			if err != nil {
				return nil, err
			}
			return preResolved{instance: instance}, nil
		}))
	}
}

// Boot calls Boot() on all eager providers.
// Must be called after ALL providers have been registered.
//
//	// Laravel: $app->boot()
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
