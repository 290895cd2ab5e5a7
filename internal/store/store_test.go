package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "freebee.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStores(t *testing.T) {
	impls := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store { return openTestSQLite(t) },
	}
	for name, open := range impls {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			_, ok, err := s.Load(ctx, "dev1", "guessed_abcdefg_a")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Save(ctx, "dev1", "guessed_abcdefg_a", `["face"]`))
			require.NoError(t, s.Save(ctx, "dev1", "guessed_abcdefg_a", `["face","facade"]`))

			v, ok, err := s.Load(ctx, "dev1", "guessed_abcdefg_a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `["face","facade"]`, v)

			_, ok, err = s.Load(ctx, "dev2", "guessed_abcdefg_a")
			require.NoError(t, err)
			assert.False(t, ok, "devices must not share entries")
		})
	}
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freebee.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), "dev", "k", `["word"]`))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)

	v, ok, err := s.Load(context.Background(), "dev", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["word"]`, v)
}

func TestMemoryHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()
	assert.Error(t, s.Save(ctx, "dev", "k", "v"))
	_, _, err := s.Load(ctx, "dev", "k")
	assert.Error(t, err)
}
