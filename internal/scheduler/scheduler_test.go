package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preetosbot/internal/config"
)

func noopJob(ctx context.Context) {}

func TestNewRegistersBothEntries(t *testing.T) {
	cfg := config.ScheduleConfig{
		Timezone:      "Asia/Manila",
		AfternoonSpec: "0 15 * * *",
		EveningSpec:   "0 23 * * *",
	}

	s, err := New(cfg, noopJob, nil)
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 2)
}

func TestNewRejectsBadCronSpec(t *testing.T) {
	cfg := config.ScheduleConfig{
		Timezone:      "Asia/Manila",
		AfternoonSpec: "not a cron spec",
		EveningSpec:   "0 23 * * *",
	}

	_, err := New(cfg, noopJob, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "afternoon")
}

func TestNewRejectsBadTimezone(t *testing.T) {
	cfg := config.ScheduleConfig{
		Timezone:      "Mars/Olympus",
		AfternoonSpec: "0 15 * * *",
		EveningSpec:   "0 23 * * *",
	}

	_, err := New(cfg, noopJob, nil)
	require.Error(t, err)
}

func TestStartStop(t *testing.T) {
	cfg := config.ScheduleConfig{
		Timezone:      "UTC",
		AfternoonSpec: "0 15 * * *",
		EveningSpec:   "0 23 * * *",
	}

	s, err := New(cfg, noopJob, nil)
	require.NoError(t, err)

	s.Start()
	s.Stop()
}
