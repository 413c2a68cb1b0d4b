package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fleet-workhours/internal/api"
	"fleet-workhours/internal/config"
	"fleet-workhours/internal/errors"
	"fleet-workhours/internal/repository/sqlstore"
	"fleet-workhours/internal/services"
	"fleet-workhours/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// cliEnv shares one in-memory store across command invocations, with both
// clocks pinned to Friday 7 November 2025, 12:00 local time.
type cliEnv struct {
	store *sqlstore.Store
	now   time.Time
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	store, err := sqlstore.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	env := &cliEnv{
		store: store,
		now:   time.Date(2025, time.November, 7, 12, 0, 0, 0, time.Local),
	}

	oldNow := timeNow
	timeNow = func() time.Time { return env.now }
	t.Cleanup(func() { timeNow = oldNow })
	return env
}

func (e *cliEnv) factory(cfg *config.Config) (api.BusinessAPI, func() error, error) {
	calc, err := cfg.Calculator()
	if err != nil {
		return nil, nil, err
	}
	v := validation.NewValidatorWithConfig(cfg)
	container := services.NewServiceContainer(e.store, calc, v, func() time.Time { return e.now })
	return api.NewBusinessAPI(container, calc, v), func() error { return nil }, nil
}

func (e *cliEnv) run(args ...string) (string, error) {
	root := NewRootCommand(config.NewConfig(), e.factory)
	var buf bytes.Buffer
	root.SetOutput(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCommand_Calculators(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		wantErr  bool
	}{
		{
			name:     "elapsed same day",
			args:     []string{"elapsed", "2025-11-07 09:00", "2025-11-07 12:00"},
			contains: []string{"3h 0m (3.00 h) of working time from 2025-11-07 09:00 to 2025-11-07 12:00"},
		},
		{
			name:     "elapsed across the weekend",
			args:     []string{"elapsed", "2025-11-07T10:00", "2025-11-09T10:00"},
			contains: []string{"18h 0m (18.00 h)"},
		},
		{
			name:     "elapsed reversed is zero",
			args:     []string{"elapsed", "2025-11-07 12:00", "2025-11-07 09:00"},
			contains: []string{"0m (0.00 h)"},
		},
		{
			name:    "elapsed bad timestamp",
			args:    []string{"elapsed", "tomorrow", "2025-11-07 09:00"},
			wantErr: true,
		},
		{
			name:    "elapsed missing argument",
			args:    []string{"elapsed", "2025-11-07 09:00"},
			wantErr: true,
		},
		{
			name:     "eta rolls to the next morning",
			args:     []string{"eta", "2025-11-10 15:00", "3"},
			contains: []string{"2025-11-11 09:00", "from now"},
		},
		{
			name:     "eta with duration hours",
			args:     []string{"eta", "2025-11-10 17:00", "2h"},
			contains: []string{"2025-11-11 09:30"},
		},
		{
			name:     "eta from now",
			args:     []string{"eta", "now", "1"},
			contains: []string{"2025-11-07 13:00"},
		},
		{
			name:    "eta bad hours",
			args:    []string{"eta", "2025-11-10 17:00", "lots"},
			wantErr: true,
		},
		{
			name:     "window defaults",
			args:     []string{"window"},
			contains: []string{"Working window: 07:30-16:30 (9.00 h per day)", "Workdays: every day"},
		},
		{
			name:     "window flags",
			args:     []string{"window", "--window-open", "08:00", "--window-close", "12:00", "--workdays", "mon,tue", "--holidays", "2025-12-25"},
			contains: []string{"08:00-12:00 (4.00 h per day)", "Workdays: Monday, Tuesday", "Holidays: 2025-12-25"},
		},
		{
			name:    "reversed window is a configuration fault",
			args:    []string{"window", "--window-open", "17:00", "--window-close", "08:00"},
			wantErr: true,
		},
		{
			name:     "elapsed under a custom window",
			args:     []string{"elapsed", "2025-11-07 06:00", "2025-11-07 18:00", "--window-open", "08:00", "--window-close", "12:00"},
			contains: []string{"4h 0m"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			out, err := env.run(tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRootCommand_WorkOrderLifecycle(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("create", "ab 123", "4", "--at", "2025-11-07 09:00", "--desc", "clutch")
	require.NoError(t, err)
	assert.Contains(t, out, "Opened work order 1 for AB 123")
	assert.Contains(t, out, "ETA 2025-11-07 13:00")

	out, err = env.run("pause", "start", "1", "--at", "2025-11-07 10:00", "--reason", "parts")
	require.NoError(t, err)
	assert.Contains(t, out, "Paused work order 1 at 2025-11-07 10:00")

	_, err = env.run("pause", "start", "1", "--at", "2025-11-07 10:30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already has an active pause")

	out, err = env.run("pause", "stop", "1", "--at", "2025-11-07 11:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Resumed work order 1 after 1h 0m of working time")

	out, err = env.run("pause", "list", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "parts")
	assert.Contains(t, out, "1h 0m")

	out, err = env.run("show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Description: clutch")
	assert.Contains(t, out, "Worked:      2h 0m of 4h 0m (50%)")
	assert.Contains(t, out, "Projected:   2025-11-07 14:00")
	assert.Contains(t, out, "Status:      open")

	out, err = env.run("list", "--open")
	require.NoError(t, err)
	assert.Contains(t, out, "AB 123")

	out, err = env.run("check", "2025-11-07 12:00", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Slot 2025-11-07 12:00 to 2025-11-07 14:00 (2.00h)")
	assert.Contains(t, out, "AB 123")

	out, err = env.run("estimate", "1", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Estimate for AB 123 is now 6.00h, ETA 2025-11-07 15:00")

	out, err = env.run("complete", "1", "--at", "2025-11-07 11:30")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed work order 1 for AB 123 at 2025-11-07 11:30 (1h 30m worked, completed)")

	_, err = env.run("estimate", "1", "8")
	assert.Error(t, err)

	out, err = env.run("delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted work order 1 for AB 123")

	_, err = env.run("show", "1")
	assert.Error(t, err)
}

func TestRootCommand_Overdue(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "No overdue work orders")

	_, err = env.run("create", "XY 9", "1", "--at", "2025-11-07 08:00")
	require.NoError(t, err)

	out, err = env.run("overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "XY 9")
	assert.Contains(t, out, "2025-11-07 09:00")
}

func TestRootCommand_Report(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("report")
	require.NoError(t, err)
	assert.Contains(t, out, "No work orders found")

	_, err = env.run("create", "AB 123", "4", "--at", "2025-11-07 09:00")
	require.NoError(t, err)
	_, err = env.run("pause", "start", "1", "--at", "2025-11-07 09:30")
	require.NoError(t, err)
	_, err = env.run("pause", "stop", "1", "--at", "2025-11-07 10:00")
	require.NoError(t, err)
	_, err = env.run("create", "CD 456", "2", "--at", "2025-11-07 09:00")
	require.NoError(t, err)

	t.Run("table", func(t *testing.T) {
		out, err := env.run("report")
		require.NoError(t, err)
		assert.Contains(t, out, "AB 123")
		assert.Contains(t, out, "CD 456")
		assert.Contains(t, out, "2 (2 open, 0 completed)")
		assert.Contains(t, out, "1, 30m in total")
	})

	t.Run("csv", func(t *testing.T) {
		out, err := env.run("report", "--format", "csv", "--plate", "ab")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "ID,Reference,Plate,Created"))
		assert.Contains(t, lines[1], "AB 123")
		// Worked 2.5h, paused 0.5h, remaining 1.5h at noon.
		assert.Contains(t, lines[1], ",2.50,0.50,1.50,1,false")
	})

	t.Run("csv to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.csv")
		out, err := env.run("report", "--format", "csv", "--output", path)
		require.NoError(t, err)
		assert.Empty(t, out)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "ID,Reference,Plate,Created"))
		assert.Contains(t, lines[1], "AB 123")
		assert.Contains(t, lines[2], "CD 456")
	})

	t.Run("csv to missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "report.csv")
		_, err := env.run("report", "--format", "csv", "--output", path)
		assert.Error(t, err)
	})

	t.Run("xlsx", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.xlsx")
		out, err := env.run("report", "--format", "xlsx", "--output", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote 2 work orders")

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()

		header, err := f.GetCellValue("Sheet1", "C1")
		require.NoError(t, err)
		assert.Equal(t, "Plate", header)
		plate, err := f.GetCellValue("Sheet1", "C3")
		require.NoError(t, err)
		assert.Equal(t, "CD 456", plate)
	})

	t.Run("xlsx needs an output file", func(t *testing.T) {
		_, err := env.run("report", "--format", "xlsx")
		assert.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := env.run("report", "--format", "pdf")
		assert.Error(t, err)
	})
}

func TestApp_BusinessWithoutFactory(t *testing.T) {
	app, err := NewApp(nil, nil, &bytes.Buffer{})
	require.NoError(t, err)

	_, err = app.business()
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConfiguration))
	assert.NoError(t, app.Close())
}

func TestApp_Helpers(t *testing.T) {
	env := newCLIEnv(t)
	app, err := NewApp(config.NewConfig(), env.factory, &bytes.Buffer{})
	require.NoError(t, err)

	now, err := app.parseTime("now")
	require.NoError(t, err)
	assert.True(t, now.Equal(env.now))

	zero, err := app.parseOptionalTime("  ")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	assert.Equal(t, "running", app.formatTimePtr(nil, "running"))
	assert.Equal(t, "2025-11-07 12:00", app.formatTime(env.now))
	assert.Equal(t, "2 hours ago", app.relative(env.now.Add(-2*time.Hour)))

	_, err = app.business()
	require.NoError(t, err)
	assert.NoError(t, app.Close())
}
