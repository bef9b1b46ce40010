package container

import (
	"fmt"
	"reflect"
)

// ── Resolver ──────────────────────────────────────────────────────────────────

// Resolver performs descriptor-driven construction, method invocation, and
// callable dispatch, resolving every parameter in a fixed order:
//
//  1. explicit value supplied by name (used verbatim, no type check)
//  2. declared non-builtin type, autowired by recursive construction
//  3. declared default value
//  4. failure — UnresolvableDependencyError naming the parameter
//
// Builtins are never autowired: a string or an int has no canonical
// instance to construct. Explicit values win over autowiring so callers
// can inject test doubles and scalars.
//
// The Resolver carries no per-call state; a resolution stack is threaded
// through each call, so a single Resolver is safe for concurrent use.
type Resolver struct {
	source DescriptorSource
	reg    *Registry // nil for a standalone resolver
}

// NewResolver creates a standalone Resolver over source. A Resolver
// obtained from a Registry additionally falls back to the Registry's
// bindings for abstract or unknown types.
func NewResolver(source DescriptorSource) *Resolver {
	return &Resolver{source: source}
}

// ── Construct ─────────────────────────────────────────────────────────────────

// Construct instantiates the type registered under name, resolving every
// constructor parameter. params supplies explicit by-name values for the
// immediate target only; autowired dependencies never see them.
func (r *Resolver) Construct(name string, params map[string]any) (any, error) {
	return r.construct(name, params, nil)
}

func (r *Resolver) construct(name string, params map[string]any, stack []string) (any, error) {
	if name == "" {
		return nil, ErrInvalidTarget
	}
	for _, inProgress := range stack {
		if inProgress == name {
			return nil, newCyclicError(stack, name)
		}
	}

	desc, ok := r.source.Describe(name)
	if !ok || desc.Abstract {
		// Unknown or abstract: a binding may still supply a concrete
		// alternative. The name joins the stack so a binding that leads
		// back to it is caught as a cycle, not a hang.
		if r.reg != nil && r.reg.Has(name) {
			return r.reg.make(name, params, append(stack, name))
		}
		return nil, newNotInstantiableError(name)
	}
	return r.build(desc, params, stack)
}

// build constructs from a concrete descriptor, bypassing bindings and the
// singleton cache entirely.
func (r *Resolver) build(desc *TypeDescriptor, params map[string]any, stack []string) (any, error) {
	stack = append(stack, desc.Name)
	args, err := r.resolveParams(desc.Name, desc.Params, params, stack)
	if err != nil {
		return nil, err
	}
	return desc.construct(args)
}

// resolveParams produces the positional argument list for owner's
// parameter descriptors, applying the resolution order independently per
// parameter.
func (r *Resolver) resolveParams(owner string, descs []ParameterDescriptor, explicit map[string]any, stack []string) ([]any, error) {
	args := make([]any, 0, len(descs))
	for _, p := range descs {
		if v, ok := explicit[p.Name]; ok {
			args = append(args, v)
			continue
		}
		if p.Type != "" && !p.Builtin {
			v, err := r.autowire(owner, p.Type, stack)
			if err != nil {
				return nil, newUnresolvableError(owner, p.Name, err)
			}
			args = append(args, v)
			continue
		}
		if p.HasDefault {
			args = append(args, p.DefaultValue)
			continue
		}
		return nil, newUnresolvableError(owner, p.Name, nil)
	}
	return args, nil
}

// autowire resolves a dependency of owner by its declared type.
// A contextual binding registered for owner wins over plain construction.
func (r *Resolver) autowire(owner, typeName string, stack []string) (any, error) {
	if r.reg != nil {
		if f := r.reg.contextualFor(owner, typeName); f != nil {
			return f(r.reg, nil)
		}
	}
	return r.construct(typeName, nil, stack)
}

// ── Invoke ────────────────────────────────────────────────────────────────────

// Invoke constructs a fresh instance of the type registered under name and
// calls methodName on it with resolved arguments. The receiver is always
// newly built — never a binding's cached instance — so methods behave as
// stateless operations over a fresh receiver.
func (r *Resolver) Invoke(name, methodName string, params map[string]any) (any, error) {
	if name == "" || methodName == "" {
		return nil, ErrInvalidTarget
	}

	desc, ok := r.source.Describe(name)
	if !ok || desc.Abstract {
		return nil, newNotInstantiableError(name)
	}
	receiver, err := r.build(desc, nil, nil)
	if err != nil {
		return nil, err
	}

	op := fmt.Sprintf("invoke %s.%s", name, methodName)
	method := reflect.ValueOf(receiver).MethodByName(methodName)
	if !method.IsValid() {
		return nil, newRuntimeError(op, fmt.Errorf("no such method"))
	}

	md, described := desc.method(methodName)
	if !described {
		// Undescribed methods are callable only when they take no
		// parameters; there is nothing to resolve names against.
		if method.Type().NumIn() > 0 {
			return nil, newRuntimeError(op, fmt.Errorf("method parameters are not described"))
		}
		return call(method, nil, op)
	}

	args, err := r.resolveParams(name, md.Params, params, []string{name})
	if err != nil {
		return nil, err
	}
	return call(method, args, op)
}

// ── Call ──────────────────────────────────────────────────────────────────────

// Call resolves the callable's described parameters and invokes it.
func (r *Resolver) Call(cb Callable, params map[string]any) (any, error) {
	if cb.Fn == nil {
		return nil, ErrInvalidTarget
	}
	op := fmt.Sprintf("call %T", cb.Fn)

	fn := reflect.ValueOf(cb.Fn)
	if fn.Kind() != reflect.Func {
		return nil, newRuntimeError(op, fmt.Errorf("not a function"))
	}

	args, err := r.resolveParams("callable", cb.Params, params, nil)
	if err != nil {
		return nil, err
	}
	return call(fn, args, op)
}

// ── Dispatch ──────────────────────────────────────────────────────────────────

// call invokes fn with resolved args, converting each to the declared
// parameter type. Return-value policy: the first non-error result is the
// result value; a trailing non-nil error return is surfaced as the error.
func call(fn reflect.Value, args []any, op string) (result any, err error) {
	t := fn.Type()
	if !t.IsVariadic() && t.NumIn() != len(args) {
		return nil, newRuntimeError(op,
			fmt.Errorf("argument count mismatch: have %d, want %d", len(args), t.NumIn()))
	}
	if t.IsVariadic() && len(args) < t.NumIn()-1 {
		return nil, newRuntimeError(op,
			fmt.Errorf("argument count mismatch: have %d, want at least %d", len(args), t.NumIn()-1))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		pt := paramType(t, i)
		v, convErr := toValue(arg, pt)
		if convErr != nil {
			return nil, newRuntimeError(op, fmt.Errorf("argument %d: %w", i, convErr))
		}
		in[i] = v
	}

	defer func() {
		if rec := recover(); rec != nil {
			result, err = nil, newRuntimeError(op, fmt.Errorf("panic: %v", rec))
		}
	}()
	out := fn.Call(in)

	for i, v := range out {
		if i == len(out)-1 && v.Type() == errType {
			if !v.IsNil() {
				err = v.Interface().(error)
			}
			continue
		}
		if result == nil {
			result = v.Interface()
		}
	}
	return result, err
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func paramType(t reflect.Type, i int) reflect.Type {
	if t.IsVariadic() && i >= t.NumIn()-1 {
		return t.In(t.NumIn() - 1).Elem()
	}
	return t.In(i)
}

// toValue converts arg to a reflect.Value of type pt, permitting kind
// conversions (untyped defaults onto sized numeric parameters).
func toValue(arg any, pt reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(pt), nil
	}
	v := reflect.ValueOf(arg)
	switch {
	case v.Type().AssignableTo(pt):
		return v, nil
	case v.Type().ConvertibleTo(pt):
		return v.Convert(pt), nil
	default:
		return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, pt)
	}
}
