package container

import (
	"fmt"
	"sync"

	"github.com/km-arc/go-foundation/framework/support"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory builds a concrete value from the registry. Make hands the
// factory the registry itself plus any extra parameters the caller
// supplied.
type Factory func(r *Registry, params map[string]any) (any, error)

// binding holds a registered definition — a type identifier or a Factory —
// and whether its first resolution is cached.
type binding struct {
	definition any
	singleton  bool
}

// Extender wraps an already-resolved instance with decorator logic.
type Extender func(instance any, r *Registry) any

// preResolved wraps a factory result that already completed a full make
// pass in a nested Make call. The outer make hands it back as-is instead
// of re-applying extenders and callbacks. Used by deferred provider
// interception, where the lazy factory re-enters Make after the real
// binding is registered.
type preResolved struct{ instance any }

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry is the IoC container — mirrors Laravel's
// Illuminate\Container\Container, with construction delegated to a
// descriptor-driven Resolver instead of PHP's constructor reflection.
//
// It supports:
//   - Bind / BindSingleton / Instance / Alias
//   - Make (with explicit parameter overrides) / Resolve (generic)
//   - Fallback construction of unbound names that are registered types
//   - Tags (group multiple abstractions under one tag)
//   - Extend (decorate / wrap resolved instances)
//   - Contextual binding (when A needs B, give it C)
//
// There is no package-level default Registry; construct one with New and
// pass it through your call graph.
type Registry struct {
	mu sync.RWMutex

	// abstract → binding, in registration order
	bindings *support.OrderedMap[string, *binding]

	// abstract → resolved singleton instance
	instances map[string]any

	// alias → abstract (canonical key)
	aliases map[string]string

	// tag → []abstract
	tags map[string][]string

	// abstract → extender funcs
	extenders map[string][]Extender

	// contextual: when[concrete][abstract] = factory
	contextual map[string]map[string]Factory

	// resolved callbacks: []func(abstract, instance)
	afterResolving []func(string, any)

	types    *TypeSet
	resolver *Resolver
}

// Option configures a Registry.
type Option func(*Registry)

// WithTypes supplies the descriptor table the registry's Resolver works
// from.
func WithTypes(types *TypeSet) Option {
	return func(r *Registry) { r.types = types }
}

// New creates a Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		bindings:   support.NewOrderedMap[string, *binding](),
		instances:  make(map[string]any),
		aliases:    make(map[string]string),
		tags:       make(map[string][]string),
		extenders:  make(map[string][]Extender),
		contextual: make(map[string]map[string]Factory),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.types == nil {
		r.types = NewTypeSet()
	}
	r.resolver = &Resolver{source: r.types, reg: r}

	// Bind the registry to itself — like Laravel's $app->instance()
	r.instances["container"] = r
	return r
}

// Describe registers a type descriptor with the registry's type table.
func (r *Registry) Describe(d *TypeDescriptor) {
	r.types.Add(d)
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient binding: a new instance per Make. definition
// is either a type identifier (string) or a Factory.
//
//	// Laravel: $app->bind(UserRepository::class, fn($app) => new EloquentUserRepository($app))
//	r.Bind("UserRepository", func(r *container.Registry, _ map[string]any) (any, error) {
//	    return &EloquentUserRepository{}, nil
//	})
//	r.Bind("logger", "ConsoleLogger") // delegate construction to the Resolver
func (r *Registry) Bind(name string, definition any) {
	r.register(name, definition, false)
}

// BindSingleton registers a binding whose first successful resolution is
// cached; every later Make returns the cached instance.
//
//	// Laravel: $app->singleton(Cache::class, fn($app) => new RedisCache($app))
func (r *Registry) BindSingleton(name string, definition any) {
	r.register(name, definition, true)
}

func (r *Registry) register(name string, definition any, singleton bool) {
	// Untyped factory literals arrive as their unnamed func type.
	if f, ok := definition.(func(*Registry, map[string]any) (any, error)); ok {
		definition = Factory(f)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.canonical(name)

	// Drop any existing instance so the name is rebuilt with the new
	// definition.
	delete(r.instances, key)
	r.bindings.Put(key, &binding{definition: definition, singleton: singleton})
}

// Instance registers a pre-built value as a resolved singleton.
//
//	// Laravel: $app->instance(Config::class, $config)
func (r *Registry) Instance(name string, instance any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.canonical(name)
	r.bindings.Delete(key)
	r.instances[key] = instance
}

// Alias registers an alternative name for an abstract.
//
//	// Laravel: $app->alias(Cache::class, 'cache')
func (r *Registry) Alias(name, alias string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", name))
	}
	r.aliases[alias] = r.canonical(name)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves name from the registry: the cached singleton if present,
// otherwise the registered factory or type identifier. Unbound names fall
// back to direct construction through the Resolver — an unregistered name
// is not an error by itself.
//
//	// Laravel: $app->make(UserRepository::class)
//	repo, err := r.Make("UserRepository", nil)
func (r *Registry) Make(name string, params map[string]any) (any, error) {
	return r.make(name, params, nil)
}

func (r *Registry) make(name string, params map[string]any, stack []string) (any, error) {
	r.mu.RLock()
	key := r.canonical(name)
	if inst, ok := r.instances[key]; ok {
		r.mu.RUnlock()
		return inst, nil
	}
	b, bound := r.bindings.Get(key)
	r.mu.RUnlock()

	if !bound {
		return r.resolver.construct(key, params, stack)
	}

	var (
		instance any
		err      error
	)
	switch def := b.definition.(type) {
	case string:
		instance, err = r.resolver.construct(def, params, stack)
	case Factory:
		instance, err = def(r, params)
		if done, ok := instance.(preResolved); ok && err == nil {
			return done.instance, nil
		}
	default:
		err = &DefinitionError{Abstract: key, Definition: b.definition}
	}
	if err != nil {
		return nil, err
	}

	instance = r.applyExtenders(key, instance)

	if b.singleton {
		// Construction runs unlocked (factories re-enter Make), so two
		// concurrent first resolutions may both construct. The first
		// writer wins the cache slot and everyone converges on it.
		r.mu.Lock()
		if existing, ok := r.instances[key]; ok {
			r.mu.Unlock()
			return existing, nil
		}
		r.instances[key] = instance
		r.mu.Unlock()
	}

	r.fireAfterResolving(key, instance)
	return instance, nil
}

// Construct instantiates a registered type directly, bypassing bindings
// for the target itself. See Resolver.Construct.
func (r *Registry) Construct(name string, params map[string]any) (any, error) {
	return r.resolver.Construct(name, params)
}

// Invoke builds a fresh instance of a registered type and calls a method
// on it. See Resolver.Invoke.
func (r *Registry) Invoke(name, method string, params map[string]any) (any, error) {
	return r.resolver.Invoke(name, method, params)
}

// Call resolves a callable's parameters and invokes it. See Resolver.Call.
func (r *Registry) Call(cb Callable, params map[string]any) (any, error) {
	return r.resolver.Call(cb, params)
}

// ── Contextual Binding ────────────────────────────────────────────────────────

// When starts a contextual binding chain.
//
//	// Laravel: $app->when(PhotoController::class)->needs(Filesystem::class)->give(fn() => new S3)
//	r.When("PhotoController").Needs("Filesystem").Give(func(r *container.Registry, _ map[string]any) (any, error) {
//	    return NewS3(), nil
//	})
func (r *Registry) When(concrete string) *ContextualBuilder {
	return &ContextualBuilder{registry: r, concrete: concrete}
}

// contextualFor returns the contextual factory for (concrete, abstract),
// or nil.
func (r *Registry) contextualFor(concrete, abstract string) Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.contextual[concrete]; ok {
		if f, ok := m[abstract]; ok {
			return f
		}
	}
	return nil
}

// ── Extend ────────────────────────────────────────────────────────────────────

// Extend decorates the resolved instance of an abstract. If the abstract
// is already resolved as a singleton, the decorator is applied to the
// cached instance immediately.
//
//	// Laravel: $app->extend(Logger::class, fn($logger, $app) => new TimestampLogger($logger))
func (r *Registry) Extend(name string, fn Extender) {
	r.mu.Lock()
	key := r.canonical(name)
	r.extenders[key] = append(r.extenders[key], fn)
	inst, resolved := r.instances[key]
	r.mu.Unlock()

	if resolved {
		extended := fn(inst, r)
		r.mu.Lock()
		r.instances[key] = extended
		r.mu.Unlock()
	}
}

func (r *Registry) applyExtenders(key string, instance any) any {
	r.mu.RLock()
	exts := r.extenders[key]
	r.mu.RUnlock()
	for _, ext := range exts {
		instance = ext(instance, r)
	}
	return instance
}

// ── Tags ──────────────────────────────────────────────────────────────────────

// Tag associates multiple abstracts under a named group.
//
//	// Laravel: $app->tag([CpuReport::class, MemoryReport::class], 'reports')
func (r *Registry) Tag(names []string, tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[tag] = append(r.tags[tag], names...)
}

// Tagged resolves all abstracts registered under a tag.
//
//	// Laravel: $app->tagged('reports')
func (r *Registry) Tagged(tag string) ([]any, error) {
	r.mu.RLock()
	names := r.tags[tag]
	r.mu.RUnlock()

	out := make([]any, 0, len(names))
	for _, name := range names {
		inst, err := r.Make(name, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Has reports whether an explicit binding or instance exists for name.
// Unbound names that Make could still resolve by fallback construction
// report false.
//
//	// Laravel: $app->bound(UserRepository::class)
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := r.canonical(name)
	if r.bindings.Has(key) {
		return true
	}
	_, ok := r.instances[key]
	return ok
}

// Resolved returns true if name has been resolved and cached at least once.
//
//	// Laravel: $app->resolved(Cache::class)
func (r *Registry) Resolved(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.instances[r.canonical(name)]
	return ok
}

// Forget removes all registrations for name (binding + instance).
func (r *Registry) Forget(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.canonical(name)
	r.bindings.Delete(key)
	delete(r.instances, key)
}

// Flush resets the entire registry, including resolving callbacks.
// Registered type descriptors survive.
func (r *Registry) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = support.NewOrderedMap[string, *binding]()
	r.instances = map[string]any{"container": r}
	r.aliases = make(map[string]string)
	r.tags = make(map[string][]string)
	r.extenders = make(map[string][]Extender)
	r.contextual = make(map[string]map[string]Factory)
	r.afterResolving = nil
}

// Bindings returns all registered abstract keys in registration order,
// followed by instance-only keys (for debugging).
func (r *Registry) Bindings() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.bindings.Keys()
	for k := range r.instances {
		if !r.bindings.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// canonical resolves an alias to its canonical key (callers hold mu).
func (r *Registry) canonical(name string) string {
	if target, ok := r.aliases[name]; ok {
		return target
	}
	return name
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired after any abstract is resolved
// through a binding.
//
//	// Laravel: $app->afterResolving(fn($object, $app) => ...)
func (r *Registry) AfterResolving(cb func(abstract string, instance any)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.afterResolving = append(r.afterResolving, cb)
}

func (r *Registry) fireAfterResolving(abstract string, instance any) {
	r.mu.RLock()
	cbs := r.afterResolving
	r.mu.RUnlock()
	for _, cb := range cbs {
		cb(abstract, instance)
	}
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Make and type-asserts the result.
//
//	// Instead of: logger := r.Make("logger", nil) + assertion
//	// Write:      logger, err := container.Resolve[*ConsoleLogger](r, "logger")
func Resolve[T any](r *Registry, name string) (T, error) {
	var zero T
	instance, err := r.Make(name, nil)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, newRuntimeError("resolve "+name,
			fmt.Errorf("resolved to %T, want %T", instance, zero))
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure. For bootstrap code
// where a missing binding is unrecoverable.
func MustResolve[T any](r *Registry, name string) T {
	v, err := Resolve[T](r, name)
	if err != nil {
		panic(err)
	}
	return v
}
