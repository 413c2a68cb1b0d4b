package services

import (
	"testing"
	"time"

	"fleet-workhours/internal/repository/sqlstore"
	"fleet-workhours/internal/validation"
	"fleet-workhours/internal/workhours"

	"github.com/stretchr/testify/require"
)

// ts returns a November 2025 timestamp in UTC. The 7th is a Friday.
func ts(day, hour, minute int) time.Time {
	return time.Date(2025, time.November, day, hour, minute, 0, 0, time.UTC)
}

// fakeClock is a settable clock for tests
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type testEnv struct {
	repo      *sqlstore.Store
	clock     *fakeClock
	container *ServiceContainer
}

func setupServices(t *testing.T, calc workhours.Calculator) *testEnv {
	t.Helper()
	repo, err := sqlstore.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	if calc == nil {
		calc = workhours.DefaultWindow()
	}
	clock := &fakeClock{now: ts(7, 9, 0)}
	return &testEnv{
		repo:      repo,
		clock:     clock,
		container: NewServiceContainer(repo, calc, validation.NewValidator(), clock.Now),
	}
}
