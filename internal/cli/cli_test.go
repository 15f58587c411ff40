package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_WRITER_DSN", "file:"+filepath.Join(t.TempDir(), "restaurants.db"))
	t.Setenv("DB_READER_DSN", "")
	t.Setenv("CACHE_DRIVER", "memory")
	t.Setenv("MESSAGING_ENABLED", "false")
	t.Setenv("OBS_ENABLE_TRACING", "false")
	t.Setenv("OBS_ENABLE_METRICS", "false")
	t.Setenv("OBS_LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedAndShow(t *testing.T) {
	sqliteEnv(t)

	out, err := run(t, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied")

	out, err = run(t, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "migration version 2")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "1 groups, 3 restaurants")

	out, err = run(t, "restaurant", "show", "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 1,
		"name": "Cafe Aroma",
		"address": "123 Main St",
		"type": "cafe",
		"budget": "MODERATE",
		"description": null,
		"rating": 4,
		"group_id": 1
	}`, out)

	out, err = run(t, "group", "show", "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Downtown"}`, out)

	out, err = run(t, "group", "show", "1", "--relationships")
	require.NoError(t, err)
	var group struct {
		Restaurants []map[string]any `json:"restaurants"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &group))
	require.Len(t, group.Restaurants, 3)
	assert.NotContains(t, group.Restaurants[0], "restaurants")
}

func TestShowErrors(t *testing.T) {
	sqliteEnv(t)

	_, err := run(t, "restaurant", "show", "zero")
	assert.Error(t, err)

	_, err = run(t, "migrate", "up")
	require.NoError(t, err)
	_, err = run(t, "restaurant", "show", "42")
	assert.ErrorContains(t, err, "restaurant not found")
}

func TestFlagLookupErrorsAreReturned(t *testing.T) {
	show, _, err := newGroupCmd().Find([]string{"show"})
	require.NoError(t, err)
	err = show.RunE(&cobra.Command{}, []string{"1"})
	assert.ErrorContains(t, err, "relationships")

	down, _, err := newMigrateCmd().Find([]string{"down"})
	require.NoError(t, err)
	err = down.RunE(&cobra.Command{}, nil)
	assert.ErrorContains(t, err, "steps")
}
