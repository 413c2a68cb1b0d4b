package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fleet-workhours/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBusinessAPI_CreatesSQLiteFile(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Database.Dir = filepath.Join(t.TempDir(), "nested", "data")
	cfg.Database.Filename = "test.db"

	businessAPI, closeFn, err := openBusinessAPI(cfg)
	require.NoError(t, err)

	created := time.Date(2025, time.November, 10, 15, 0, 0, 0, time.UTC)
	progress, err := businessAPI.OpenWorkOrder(context.Background(), "AB 123", "", created, 3)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.November, 11, 9, 0, 0, 0, time.UTC), progress.WorkOrder.EstimatedCompletion.UTC())
	require.NoError(t, closeFn())

	assert.FileExists(t, cfg.GetDatabasePath())

	// Reopening sees the same data
	businessAPI, closeFn, err = openBusinessAPI(cfg)
	require.NoError(t, err)
	defer closeFn()

	w, err := businessAPI.GetWorkOrder(context.Background(), progress.WorkOrder.Reference)
	require.NoError(t, err)
	assert.Equal(t, "AB 123", w.Plate)
}

func TestOpenBusinessAPI_BadWindow(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Database.Dir = t.TempDir()
	cfg.Window.Open = "17:00"
	cfg.Window.Close = "08:00"

	_, _, err := openBusinessAPI(cfg)
	assert.Error(t, err)
}
