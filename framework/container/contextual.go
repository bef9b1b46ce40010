package container

// ContextualBuilder implements the fluent contextual binding API.
//
//	// Laravel: $app->when(PhotoController::class)->needs(Filesystem::class)->give(...)
//	r.When("PhotoController").Needs("Filesystem").Give(func(r *container.Registry, _ map[string]any) (any, error) {
//	    return NewS3(), nil
//	})
//
// A contextual factory wins over plain autowiring whenever the Resolver
// fills a dependency of the named concrete type.
type ContextualBuilder struct {
	registry *Registry
	concrete string
	needs    string
}

// Needs specifies which declared dependency type the concrete type is
// having overridden.
func (b *ContextualBuilder) Needs(abstract string) *ContextualBuilder {
	b.needs = abstract
	return b
}

// Give provides the factory used when the concrete type resolves the
// specified dependency.
func (b *ContextualBuilder) Give(factory Factory) {
	b.registry.mu.Lock()
	defer b.registry.mu.Unlock()

	if _, ok := b.registry.contextual[b.concrete]; !ok {
		b.registry.contextual[b.concrete] = make(map[string]Factory)
	}
	b.registry.contextual[b.concrete][b.needs] = factory
}

// GiveValue is a shorthand for Give when the value is a simple scalar or
// pre-built instance (no factory logic needed).
//
//	// Laravel: ->give('/tmp/photos')
//	r.When("PhotoController").Needs("storagePath").GiveValue("/tmp/photos")
func (b *ContextualBuilder) GiveValue(value any) {
	b.Give(func(_ *Registry, _ map[string]any) (any, error) { return value, nil })
}
