package container

import (
	"errors"
	"fmt"
	"strings"
)

// ── Error kinds ───────────────────────────────────────────────────────────────

// Sentinel kinds for errors.Is matching. Every error returned by the
// Registry and Resolver reports exactly one of these.
//
//	_, err := c.Make("mailer", nil)
//	if errors.Is(err, container.ErrUnresolvable) { ... }
var (
	// ErrInvalidTarget — a required identifier (target type, method name,
	// callable) is empty. Always a caller programming error.
	ErrInvalidTarget = errors.New("target cannot be empty")

	// ErrNotInstantiable — the target type is abstract or unknown and no
	// binding supplies a concrete alternative.
	ErrNotInstantiable = errors.New("type is not instantiable")

	// ErrUnresolvable — a parameter could not be satisfied by an explicit
	// value, autowiring, or a default.
	ErrUnresolvable = errors.New("unresolvable dependency")

	// ErrCyclic — a type was re-entered while already being resolved on
	// the current build stack.
	ErrCyclic = errors.New("cyclic dependency")

	// ErrRuntime — a lower-level dispatch failure (malformed method
	// reference, constructor panic, argument mismatch) wrapped into a
	// stable surface.
	ErrRuntime = errors.New("runtime resolution failure")

	// ErrDefinition — a binding holds a definition of an unsupported kind;
	// indicates an internal contract violation, not user error.
	ErrDefinition = errors.New("unsupported binding definition")
)

// ── NotInstantiableError ──────────────────────────────────────────────────────

// NotInstantiableError reports a type that cannot be constructed.
type NotInstantiableError struct {
	Type string
}

func (err *NotInstantiableError) Error() string {
	return fmt.Sprintf("container: target [%s] is not instantiable", err.Type)
}

func (err *NotInstantiableError) Is(target error) bool { return target == ErrNotInstantiable }

func newNotInstantiableError(typeName string) error {
	return &NotInstantiableError{Type: typeName}
}

// ── UnresolvableDependencyError ───────────────────────────────────────────────

// UnresolvableDependencyError names the parameter that could not be
// satisfied while resolving Type.
type UnresolvableDependencyError struct {
	Type  string
	Param string
	cause error
}

func (err *UnresolvableDependencyError) Error() string {
	if err.cause != nil {
		return fmt.Sprintf("container: unresolvable dependency [%s] in [%s]: %s",
			err.Param, err.Type, err.cause)
	}
	return fmt.Sprintf("container: unresolvable dependency [%s] in [%s]", err.Param, err.Type)
}

func (err *UnresolvableDependencyError) Unwrap() error        { return err.cause }
func (err *UnresolvableDependencyError) Is(target error) bool { return target == ErrUnresolvable }

func newUnresolvableError(typeName, param string, cause error) error {
	return &UnresolvableDependencyError{Type: typeName, Param: param, cause: cause}
}

// ── CyclicDependencyError ─────────────────────────────────────────────────────

// CyclicDependencyError carries the resolution chain that closed the cycle,
// ending with the re-entered type.
type CyclicDependencyError struct {
	Chain []string
}

func (err *CyclicDependencyError) Error() string {
	return fmt.Sprintf("container: cyclic dependency: %s", strings.Join(err.Chain, " -> "))
}

func (err *CyclicDependencyError) Is(target error) bool { return target == ErrCyclic }

func newCyclicError(stack []string, reentered string) error {
	chain := make([]string, 0, len(stack)+1)
	chain = append(chain, stack...)
	chain = append(chain, reentered)
	return &CyclicDependencyError{Chain: chain}
}

// ── RuntimeError ──────────────────────────────────────────────────────────────

// RuntimeError wraps an introspection or dispatch failure. Op identifies
// the operation that failed (e.g. "invoke User.Greet").
type RuntimeError struct {
	Op    string
	cause error
}

func (err *RuntimeError) Error() string {
	return fmt.Sprintf("container: %s: %s", err.Op, err.cause)
}

func (err *RuntimeError) Unwrap() error        { return err.cause }
func (err *RuntimeError) Is(target error) bool { return target == ErrRuntime }

func newRuntimeError(op string, cause error) error {
	return &RuntimeError{Op: op, cause: cause}
}

// ── DefinitionError ───────────────────────────────────────────────────────────

// DefinitionError reports a binding whose definition is neither a type
// identifier nor a Factory.
type DefinitionError struct {
	Abstract   string
	Definition any
}

func (err *DefinitionError) Error() string {
	return fmt.Sprintf("container: binding [%s] holds unsupported definition %T",
		err.Abstract, err.Definition)
}

func (err *DefinitionError) Is(target error) bool { return target == ErrDefinition }
