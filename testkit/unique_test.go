package testkit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceyewan/unique/config"
	"github.com/ceyewan/unique/counter"
	"github.com/ceyewan/unique/unique"
)

func TestNewUniqueInMemory(t *testing.T) {
	u := NewUniqueInMemory(t)
	first := Get[[]byte](t, u, unique.NameBytes, nil)
	second := Get[[]byte](t, u, unique.NameBytes, nil)
	assert.NotEqual(t, first, second)
}

func TestNewUniqueInFile(t *testing.T) {
	u := NewUniqueInFile(t)
	first := Get[[]byte](t, u, unique.NameBytes, nil)
	second := Get[[]byte](t, u, unique.NameBytes, nil)
	assert.NotEqual(t, first, second)
}

func TestNewUnique_TestScope(t *testing.T) {
	cfg := &config.Config{Scope: config.ScopeTest}

	a := NewUnique(t, cfg)
	b := NewUnique(t, cfg)
	assert.NotSame(t, a, b)

	// 独立计数器，各自从 0 开始
	assert.Equal(t, int64(0), Integer(t, a, unique.IntegerOptions{}))
	assert.Equal(t, int64(0), Integer(t, b, unique.IntegerOptions{}))
}

func TestNewUnique_SessionScope(t *testing.T) {
	cfg := &config.Config{Scope: config.ScopeSession}

	var first *unique.Dispatcher
	t.Run("first", func(t *testing.T) {
		first = NewUnique(t, cfg)
		Text(t, first, unique.TextOptions{})
	})
	t.Run("second", func(t *testing.T) {
		second := NewUnique(t, cfg)
		assert.Same(t, first, second)

		// 共享计数器，不会重复第一个子测试的值
		assert.NotEqual(t, "text-00000000", Text(t, second, unique.TextOptions{}))
	})
}

func TestNewUnique_FileScopeSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "count")
	cfg := &config.Config{
		Counter: counter.Config{Driver: counter.DriverFile, File: counter.FileConfig{Path: path}},
	}

	assert.Equal(t, "text-00000000", Text(t, NewUnique(t, cfg), unique.TextOptions{}))
	assert.Equal(t, "text-00000001", Text(t, NewUnique(t, cfg), unique.TextOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2", string(data))
}

func TestTypedHelpers(t *testing.T) {
	u := NewUniqueInMemory(t)

	email := Email(t, u, unique.EmailOptions{Prefix: "alice"})
	assert.True(t, strings.HasPrefix(email, "alice-"), email)
	assert.True(t, strings.HasSuffix(email, "@example.com"), email)

	n := Integer(t, u, unique.IntegerOptions{Base: 10, Mod: 5})
	assert.GreaterOrEqual(t, n, int64(10))
	assert.Less(t, n, int64(15))
}

func TestSQLiteCounterConfig(t *testing.T) {
	u := NewUniqueWithCounter(t, NewSQLiteCounterConfig(t))
	assert.Equal(t, int64(0), Integer(t, u, unique.IntegerOptions{}))
	assert.Equal(t, int64(1), Integer(t, u, unique.IntegerOptions{}))
}

func TestKit(t *testing.T) {
	kit := NewKit(t)
	require.NotNil(t, kit.Logger)
	require.NotNil(t, kit.Meter)

	ctx := NewContext(t, 0)
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)

	assert.Len(t, NewID(), 8)
	assert.NotEqual(t, NewID(), NewID())
}
