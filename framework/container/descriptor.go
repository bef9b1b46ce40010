package container

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/km-arc/go-foundation/framework/support"
)

// ── ParameterDescriptor ───────────────────────────────────────────────────────

// ParameterDescriptor describes one parameter of a constructor, method, or
// callable: its name, its declared type identifier (if any), whether that
// type is a builtin that cannot be auto-constructed, and an optional
// default value.
type ParameterDescriptor struct {
	Name         string
	Type         string // declared type identifier, "" when untyped
	Builtin      bool
	HasDefault   bool
	DefaultValue any
}

// Dep describes a parameter with a declared non-builtin type, eligible for
// autowiring.
//
//	container.Dep("logger", "ConsoleLogger")
func Dep(name, typeName string) ParameterDescriptor {
	return ParameterDescriptor{Name: name, Type: typeName}
}

// Scalar describes a builtin-typed parameter (string, number, bool).
// Scalars are never autowired; they must arrive explicitly or via Default.
//
//	container.Scalar("retries").Default(3)
func Scalar(name string) ParameterDescriptor {
	return ParameterDescriptor{Name: name, Builtin: true}
}

// Default attaches a default value, used when the parameter gets no
// explicit value and cannot be autowired.
func (p ParameterDescriptor) Default(v any) ParameterDescriptor {
	p.HasDefault = true
	p.DefaultValue = v
	return p
}

// ── MethodDescriptor ──────────────────────────────────────────────────────────

// MethodDescriptor describes the parameters of one invocable method.
type MethodDescriptor struct {
	Name   string
	Params []ParameterDescriptor
}

// ── TypeDescriptor ────────────────────────────────────────────────────────────

// Constructor builds an instance from positional, already-resolved
// arguments (one per declared parameter, in order).
type Constructor func(args ...any) (any, error)

// TypeDescriptor is the static metadata the Resolver works from — the Go
// replacement for PHP's constructor reflection. Each constructable type
// registers its parameter list once; the Resolver never inspects live
// parameter names at call time (Go's reflect cannot see them).
type TypeDescriptor struct {
	Name     string
	Abstract bool
	Params   []ParameterDescriptor

	methods map[string]*MethodDescriptor
	newFunc Constructor
	rtype   reflect.Type
}

// Type registers a concrete type T under name with the given constructor
// parameters. Without an explicit Constructor, instances are built as
// zero values (structs as *T) and resolved arguments are assigned onto
// the exported fields matching each parameter's name. Interface types
// panic here; register them with Abstract instead.
//
//	container.Type[FileStore]("FileStore",
//	    container.Dep("logger", "ConsoleLogger"),
//	    container.Scalar("path").Default("/tmp"),
//	)
func Type[T any](name string, params ...ParameterDescriptor) *TypeDescriptor {
	rtype := reflect.TypeOf((*T)(nil)).Elem()
	if rtype.Kind() == reflect.Interface {
		panic(fmt.Sprintf("container: [%s] is an interface, register it with Abstract", name))
	}
	return &TypeDescriptor{
		Name:   name,
		Params: params,
		rtype:  rtype,
	}
}

// Abstract registers an interface type under name. Abstract types are
// never constructed directly; resolution succeeds only when a binding
// supplies a concrete alternative.
//
//	container.Abstract[Store]("Store")
func Abstract[T any](name string) *TypeDescriptor {
	return &TypeDescriptor{
		Name:     name,
		Abstract: true,
		rtype:    reflect.TypeOf((*T)(nil)).Elem(),
	}
}

// Constructor sets an explicit construction function, bypassing
// zero-value construction and field assignment.
func (d *TypeDescriptor) Constructor(fn Constructor) *TypeDescriptor {
	d.newFunc = fn
	return d
}

// Method declares an invocable method and its parameters.
//
//	container.Type[Mailer]("Mailer").
//	    Method("Send", container.Scalar("to"), container.Scalar("body").Default(""))
func (d *TypeDescriptor) Method(name string, params ...ParameterDescriptor) *TypeDescriptor {
	if d.methods == nil {
		d.methods = make(map[string]*MethodDescriptor)
	}
	d.methods[name] = &MethodDescriptor{Name: name, Params: params}
	return d
}

// Fields derives the parameter list from T's exported struct fields —
// field name (lower-cased first letter) becomes the parameter name, the
// field's base type name becomes the declared type, and builtin kinds are
// flagged as such.
func (d *TypeDescriptor) Fields() *TypeDescriptor {
	t := d.rtype
	if t.Kind() != reflect.Struct {
		return d
	}
	params := make([]ParameterDescriptor, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		params = append(params, ParameterDescriptor{
			Name:    lowerFirst(f.Name),
			Type:    baseTypeName(f.Type),
			Builtin: isBuiltinKind(f.Type.Kind()),
		})
	}
	d.Params = params
	return d
}

func (d *TypeDescriptor) method(name string) (*MethodDescriptor, bool) {
	m, ok := d.methods[name]
	return m, ok
}

// construct builds an instance from positional resolved arguments.
func (d *TypeDescriptor) construct(args []any) (any, error) {
	if d.newFunc != nil {
		out, err := d.newFunc(args...)
		if err != nil {
			return nil, newRuntimeError("construct "+d.Name, err)
		}
		return out, nil
	}
	if d.rtype.Kind() != reflect.Struct {
		// Non-struct types without a constructor resolve to their zero value.
		return reflect.New(d.rtype).Elem().Interface(), nil
	}

	v := reflect.New(d.rtype).Elem()
	for i, p := range d.Params {
		if i >= len(args) {
			break
		}
		field := v.FieldByNameFunc(func(n string) bool {
			return strings.EqualFold(n, p.Name)
		})
		if !field.IsValid() || !field.CanSet() {
			continue
		}
		if err := assign(field, args[i]); err != nil {
			return nil, newRuntimeError(
				fmt.Sprintf("construct %s: parameter %q", d.Name, p.Name), err)
		}
	}
	return v.Addr().Interface(), nil
}

// ── DescriptorSource / TypeSet ────────────────────────────────────────────────

// DescriptorSource supplies type metadata to the Resolver.
type DescriptorSource interface {
	// Describe returns the descriptor registered under name, if any.
	Describe(name string) (*TypeDescriptor, bool)
}

// TypeSet is the default DescriptorSource: an insertion-ordered table of
// TypeDescriptors. Re-adding a name overwrites the prior descriptor.
type TypeSet struct {
	types *support.OrderedMap[string, *TypeDescriptor]
}

// NewTypeSet creates a TypeSet pre-populated with descs.
func NewTypeSet(descs ...*TypeDescriptor) *TypeSet {
	s := &TypeSet{types: support.NewOrderedMap[string, *TypeDescriptor]()}
	for _, d := range descs {
		s.Add(d)
	}
	return s
}

// Add registers a descriptor under its Name.
func (s *TypeSet) Add(d *TypeDescriptor) *TypeSet {
	s.types.Put(d.Name, d)
	return s
}

// Describe implements DescriptorSource.
func (s *TypeSet) Describe(name string) (*TypeDescriptor, bool) {
	return s.types.Get(name)
}

// Names returns registered type names in registration order.
func (s *TypeSet) Names() []string { return s.types.Keys() }

// ── Callable ──────────────────────────────────────────────────────────────────

// Callable pairs a function value with the descriptors of its parameters,
// in declaration order.
type Callable struct {
	Fn     any
	Params []ParameterDescriptor
}

// Func builds a Callable.
//
//	container.Func(notify, container.Dep("logger", "ConsoleLogger"), container.Scalar("msg"))
func Func(fn any, params ...ParameterDescriptor) Callable {
	return Callable{Fn: fn, Params: params}
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeName returns the bare type name of v (pointers dereferenced), the
// identifier form used by TypeSet registrations.
//
//	container.TypeName(&ConsoleLogger{}) // "ConsoleLogger"
func TypeName(v any) string {
	return baseTypeName(reflect.TypeOf(v))
}

func baseTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func isBuiltinKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// assign sets value onto dst, converting between compatible kinds
// (e.g. an untyped int default onto an int64 field).
func assign(dst reflect.Value, value any) error {
	if value == nil {
		return nil
	}
	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(dst.Type()):
		dst.Set(v)
	case v.Type().ConvertibleTo(dst.Type()):
		dst.Set(v.Convert(dst.Type()))
	default:
		return fmt.Errorf("cannot use %T as %s", value, dst.Type())
	}
	return nil
}
