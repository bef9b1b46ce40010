// Package container provides a Laravel-compatible IoC (Inversion of
// Control) registry and a descriptor-driven dependency Resolver for Go.
//
// # Overview
//
// The Registry manages named bindings (transient and singleton) and
// delegates construction to the Resolver. The Resolver works from a table
// of TypeDescriptors — Go's reflect cannot see parameter names or default
// values, so each constructable type declares its parameters once, and the
// Resolver walks the dependency graph at run time from that table.
//
// Each parameter is resolved in a fixed order: an explicit value supplied
// by name, then autowiring of a declared non-builtin type, then a declared
// default, then failure naming the parameter.
//
// # Describing types
//
//	types := container.NewTypeSet(
//	    container.Type[ConsoleLogger]("ConsoleLogger"),
//	    container.Type[FileStore]("FileStore",
//	        container.Dep("logger", "ConsoleLogger"),
//	        container.Scalar("path").Default("/tmp"),
//	    ),
//	    container.Abstract[Store]("Store"),
//	)
//
// # Bindings
//
//	r := container.New(container.WithTypes(types))
//
//	// Transient — new instance every Make()
//	// Laravel: $app->bind(Foo::class, fn($app) => new Foo)
//	r.Bind("store", "FileStore")
//
//	// Singleton — created once, reused
//	// Laravel: $app->singleton(Cache::class, fn($app) => new RedisCache)
//	r.BindSingleton("cache", func(r *container.Registry, _ map[string]any) (any, error) {
//	    cfg, err := container.Resolve[*Config](r, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewCache(cfg), nil
//	})
//
//	// Pre-built value
//	// Laravel: $app->instance(Config::class, $config)
//	r.Instance("config", myConfig)
//
// # Resolving
//
//	// Laravel: $app->make(Cache::class)
//	raw, err := r.Make("cache", nil)
//
//	// Generic (preferred — no type assertion required)
//	cache, err := container.Resolve[*RedisCache](r, "cache")
//
//	// Explicit overrides win over autowiring and defaults
//	store, err := r.Make("store", map[string]any{"path": "/var/data"})
//
// # Invoking and calling
//
//	// Fresh receiver per invocation, arguments resolved like constructor
//	// parameters
//	out, err := r.Invoke("Mailer", "Send", map[string]any{"to": "ops@example.com"})
//
//	// Arbitrary callables with described parameters
//	out, err := r.Call(container.Func(notify,
//	    container.Dep("logger", "ConsoleLogger"),
//	    container.Scalar("message"),
//	), map[string]any{"message": "deployed"})
//
// # Failure surface
//
// Every failure is one of the sentinel kinds — ErrInvalidTarget,
// ErrNotInstantiable, ErrUnresolvable, ErrCyclic, ErrRuntime,
// ErrDefinition — matchable with errors.Is; the concrete error types
// carry the offending type, parameter, or cycle chain. Resolution either
// completes fully or fails without partial construction.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Registry) {
//	    app.BindSingleton("mailer", func(r *container.Registry, _ map[string]any) (any, error) {
//	        return NewSMTP(), nil
//	    })
//	}
//
//	providers := container.NewProviderRegistry(r)
//	providers.Register(&AppServiceProvider{})
//	providers.Boot()
package container
