package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-wellness/internal/app"
	"github.com/comitanigiacomo/kanso-wellness/internal/config"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

// memoryOpener returns a fresh app over store on each invocation, the way
// separate CLI runs reopen the same database.
func memoryOpener(store domain.RecordStore) opener {
	return func(ctx context.Context) (*app.App, error) {
		cfg := config.Config{
			StoreDriver:      config.DriverMemory,
			JWTSecret:        "cli-test",
			TokenTTL:         time.Hour,
			WriteTimeout:     time.Second,
			ReminderInterval: time.Hour,
			CoachProvider:    "mock",
		}
		backend := &app.Backend{Store: store, Driver: config.DriverMemory}
		return app.NewWithBackend(ctx, backend, cfg, nil, app.WithClock(func() time.Time { return fixedNow }))
	}
}

func run(t *testing.T, store domain.RecordStore, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(memoryOpener(store))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHabitsCommands(t *testing.T) {
	store := repository.NewInMemoryRecordStore()

	out, err := run(t, store, "habits", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Meditate 10 minutes")
	assert.Contains(t, out, "STREAK")

	out, err = run(t, store, "habits", "add", "Stretch", "--category", "fitness", "-o", "json")
	require.NoError(t, err)
	var added []domain.Habit
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	require.Len(t, added, 1)
	assert.Equal(t, 5, added[0].ID)

	_, err = run(t, store, "habits", "toggle", "1")
	require.NoError(t, err)

	out, err = run(t, store, "habits", "list", "-o", "json")
	require.NoError(t, err)
	var habits []domain.Habit
	require.NoError(t, json.Unmarshal([]byte(out), &habits))
	require.Len(t, habits, 5)
	assert.True(t, habits[0].Completed)
	assert.Equal(t, 8, habits[0].Streak)

	out, err = run(t, store, "habits", "delete", "5")
	require.NoError(t, err)
	assert.Equal(t, "deleted habit 5\n", out)

	_, err = run(t, store, "habits", "delete", "5")
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)

	_, err = run(t, store, "habits", "toggle", "abc")
	assert.Error(t, err)
}

func TestSessionCommands(t *testing.T) {
	store := repository.NewInMemoryRecordStore()

	out, err := run(t, store, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "not logged in\n", out)

	_, err = run(t, store, "login", "victoria_doe", "--password", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = run(t, store, "login", "victoria_doe", "-p", "password123")
	require.NoError(t, err)

	out, err = run(t, store, "whoami", "-o", "yaml")
	require.NoError(t, err)
	var user domain.User
	require.NoError(t, yaml.Unmarshal([]byte(out), &user))
	assert.Equal(t, "victoria_doe", user.Username)

	_, err = run(t, store, "logout")
	require.NoError(t, err)

	out, err = run(t, store, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "not logged in\n", out)
}

func TestAddictionCommands(t *testing.T) {
	store := repository.NewInMemoryRecordStore()

	out, err := run(t, store, "addictions", "relapse", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "I'm here to help.")
	assert.Contains(t, out, "2026-05-04")

	out, err = run(t, store, "addictions", "sober-day", "2", "-o", "json")
	require.NoError(t, err)
	var updated []domain.Addiction
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, 1, updated[0].DaysSober)
}

func TestScheduleCommands(t *testing.T) {
	store := repository.NewInMemoryRecordStore()

	out, err := run(t, store, "meals", "list", "--date", "2026-05-04")
	require.NoError(t, err)
	assert.Contains(t, out, "Quinoa Power Salad")

	out, err = run(t, store, "meals", "list", "--date", "2026-05-05")
	require.NoError(t, err)
	assert.NotContains(t, out, "Quinoa Power Salad")

	out, err = run(t, store, "supplements", "toggle", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "[x]")

	out, err = run(t, store, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Schedule for 2026-05-04")
	assert.Contains(t, out, "Supplements  2/2")
}

func TestCoachAndFormat(t *testing.T) {
	store := repository.NewInMemoryRecordStore()

	out, err := run(t, store, "coach", "ask", "hello", "-o", "json")
	require.NoError(t, err)
	var resp map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Anuna", resp["coach"])
	assert.Equal(t, "Response to: hello", resp["answer"])

	_, err = run(t, store, "habits", "list", "-o", "xml")
	assert.Error(t, err)
}
