package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/fwojciec/scullery/cmd/scullery"
)

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "scullery.db")
	return m
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns error when no command given", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("prints help without error", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "scrape")
	})

	t.Run("ingredient add and list round-trip", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		ctx := context.Background()

		stdout := &bytes.Buffer{}
		err := m.Run(ctx, []string{"ingredient", "add", "Yellow Onion"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Added ingredient")

		stdout.Reset()
		err = m.Run(ctx, []string{"ingredient", "list"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Yellow Onion")
	})

	t.Run("duplicate ingredient add fails", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		ctx := context.Background()

		require.NoError(t, m.Run(ctx, []string{"ingredient", "add", "Garlic"}, &bytes.Buffer{}, &bytes.Buffer{}))

		stderr := &bytes.Buffer{}
		err := m.Run(ctx, []string{"ingredient", "add", "garlic"}, &bytes.Buffer{}, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "already exists")
	})
}
