package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-foundation/framework/container"
)

type Worker struct {
	Logger  *ConsoleLogger
	Retries int
	secret  string // stays out of the derived parameter list
}

// ── TypeSet ───────────────────────────────────────────────────────────────────

func TestTypeSet_ReAddOverwritesKeepingOrder(t *testing.T) {
	ts := container.NewTypeSet(
		container.Type[ConsoleLogger]("ConsoleLogger"),
		container.Type[Cache]("Cache"),
	)
	ts.Add(container.Type[ConsoleLogger]("ConsoleLogger"))

	assert.Equal(t, []string{"ConsoleLogger", "Cache"}, ts.Names())
}

func TestTypeSet_DescribeUnknown(t *testing.T) {
	ts := container.NewTypeSet()
	_, ok := ts.Describe("Ghost")
	require.False(t, ok)
}

func TestType_InterfaceArgument_Panics(t *testing.T) {
	require.Panics(t, func() {
		container.Type[Store]("Store") // interfaces go through Abstract
	})
}

// ── Parameter builders ────────────────────────────────────────────────────────

func TestScalar_DefaultChaining(t *testing.T) {
	p := container.Scalar("retries").Default(3)

	assert.Equal(t, "retries", p.Name)
	assert.True(t, p.Builtin)
	assert.True(t, p.HasDefault)
	assert.Equal(t, 3, p.DefaultValue)
}

func TestDep_DeclaresAutowirableType(t *testing.T) {
	p := container.Dep("logger", "ConsoleLogger")

	assert.Equal(t, "ConsoleLogger", p.Type)
	assert.False(t, p.Builtin)
	assert.False(t, p.HasDefault)
}

// ── Fields derivation ─────────────────────────────────────────────────────────

func TestFields_DerivedFromExportedStructFields(t *testing.T) {
	d := container.Type[Worker]("Worker").Fields()

	require.Len(t, d.Params, 2, "unexported fields are skipped")

	assert.Equal(t, "logger", d.Params[0].Name)
	assert.Equal(t, "ConsoleLogger", d.Params[0].Type)
	assert.False(t, d.Params[0].Builtin)

	assert.Equal(t, "retries", d.Params[1].Name)
	assert.True(t, d.Params[1].Builtin)
}

func TestFields_DerivedDescriptorResolves(t *testing.T) {
	ts := container.NewTypeSet(
		container.Type[ConsoleLogger]("ConsoleLogger"),
		container.Type[Worker]("Worker").Fields(),
	)
	r := container.New(container.WithTypes(ts))

	got, err := r.Construct("Worker", map[string]any{"retries": 5})
	require.NoError(t, err)

	w := got.(*Worker)
	assert.NotNil(t, w.Logger)
	assert.Equal(t, 5, w.Retries)
}

// ── Construction ──────────────────────────────────────────────────────────────

func TestConstruct_CustomConstructorReceivesOrderedArgs(t *testing.T) {
	ts := container.NewTypeSet(
		container.Type[ConsoleLogger]("ConsoleLogger"),
		container.Type[FileStore]("FileStore",
			container.Dep("logger", "ConsoleLogger"),
			container.Scalar("path").Default("/tmp"),
		).Constructor(func(args ...any) (any, error) {
			return &FileStore{
				Logger: args[0].(*ConsoleLogger),
				Path:   args[1].(string) + "/suffix",
			}, nil
		}),
	)
	r := container.New(container.WithTypes(ts))

	got, err := r.Construct("FileStore", nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/suffix", got.(*FileStore).Path)
}

func TestConstruct_FieldAssignmentConvertsKinds(t *testing.T) {
	r := newRegistry()

	got, err := r.Construct("Cache", map[string]any{"size": int64(8)})
	require.NoError(t, err)
	assert.Equal(t, 8, got.(*Cache).Size)
}

func TestConstruct_IncompatibleExplicitValue_Runtime(t *testing.T) {
	r := newRegistry()

	_, err := r.Construct("Cache", map[string]any{"size": []string{"nope"}})
	require.ErrorIs(t, err, container.ErrRuntime)
}

// ── TypeName ──────────────────────────────────────────────────────────────────

func TestTypeName_DereferencesPointers(t *testing.T) {
	assert.Equal(t, "ConsoleLogger", container.TypeName(&ConsoleLogger{}))
	assert.Equal(t, "ConsoleLogger", container.TypeName(ConsoleLogger{}))
}
