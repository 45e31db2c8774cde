package unique

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/unique/xerrors"
)

func constGenerator(v any) Generator {
	return GeneratorFunc(func(context.Context, *Dispatcher, any) (any, error) {
		return v, nil
	})
}

func TestResolve(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		g, err := Resolve(map[string]map[string]Generator{
			Namespace: {"test": constGenerator("test")},
		}, "test")
		require.NoError(t, err)

		v, err := g.Generate(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "test", v)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := Resolve(map[string]map[string]Generator{Namespace: {}}, "test")
		assert.ErrorIs(t, err, ErrGeneratorNotFound)
		assert.ErrorIs(t, err, xerrors.ErrNotFound)
	})

	t.Run("missing namespace", func(t *testing.T) {
		_, err := Resolve(map[string]map[string]Generator{}, "test")
		assert.ErrorIs(t, err, ErrNamespaceNotFound)
		assert.ErrorIs(t, err, xerrors.ErrNotFound)
	})

	t.Run("other namespace is ignored", func(t *testing.T) {
		_, err := Resolve(map[string]map[string]Generator{
			"other": {"test": constGenerator("test")},
		}, "test")
		assert.ErrorIs(t, err, ErrNamespaceNotFound)
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, err := Resolve(map[string]map[string]Generator{
			Namespace: {"test": constGenerator("test")},
		}, "Test")
		assert.ErrorIs(t, err, ErrGeneratorNotFound)
	})

	t.Run("does not invoke generator", func(t *testing.T) {
		called := false
		g := GeneratorFunc(func(context.Context, *Dispatcher, any) (any, error) {
			called = true
			return nil, nil
		})
		_, err := Plugins{Namespace: {"test": g}}.Resolve("test")
		require.NoError(t, err)
		assert.False(t, called)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("new registry is empty", func(t *testing.T) {
		r := NewRegistry()
		assert.Empty(t, r.Names())

		_, err := r.Resolve("text")
		assert.ErrorIs(t, err, ErrNamespaceNotFound)
	})

	t.Run("register and resolve", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register("b", constGenerator("b")))
		require.NoError(t, r.Register("a", constGenerator("a")))

		assert.Equal(t, []string{"a", "b"}, r.Names())

		g, err := r.Resolve("a")
		require.NoError(t, err)
		v, err := g.Generate(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "a", v)

		_, err = r.Resolve("c")
		assert.ErrorIs(t, err, ErrGeneratorNotFound)
	})

	t.Run("register replaces", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister("x", constGenerator(1))
		r.MustRegister("x", constGenerator(2))

		g, err := r.Resolve("x")
		require.NoError(t, err)
		v, _ := g.Generate(context.Background(), nil, nil)
		assert.Equal(t, 2, v)
	})

	t.Run("invalid registration", func(t *testing.T) {
		r := NewRegistry()
		err := r.Register("", constGenerator(1))
		assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
		assert.Equal(t, "generator_name_empty", xerrors.GetCode(err))

		err = r.Register("x", nil)
		assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
		assert.Equal(t, "generator_nil", xerrors.GetCode(err))

		assert.Panics(t, func() { r.MustRegister("", nil) })
	})

	t.Run("default registry has builtins", func(t *testing.T) {
		assert.Equal(t, []string{
			NameBytes, NameDigits, NameEmail, NameFloat, NameInteger,
			NamePassword, NameText, NameUUID, NameXID,
		}, DefaultRegistry().Names())
	})
}

func TestTyped(t *testing.T) {
	type opts struct{ N int }
	g := Typed(func(_ context.Context, _ *Dispatcher, o opts) (int, error) {
		return o.N, nil
	})
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    any
		want    int
		wantErr bool
	}{
		{name: "nil uses zero value", opts: nil, want: 0},
		{name: "value", opts: opts{N: 3}, want: 3},
		{name: "pointer", opts: &opts{N: 4}, want: 4},
		{name: "nil pointer", opts: (*opts)(nil), want: 0},
		{name: "wrong type", opts: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := g.Generate(ctx, nil, tt.opts)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOptions)
				assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}
