package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestockcare/internal/config"
)

type fakeReminders struct {
	calls    int
	day      time.Time
	deadline bool
	err      error
	panic    bool
}

func (f *fakeReminders) SendFollowUpReminders(ctx context.Context, day time.Time) (int, error) {
	f.calls++
	f.day = day
	_, f.deadline = ctx.Deadline()
	if f.panic {
		panic("boom")
	}
	return 3, f.err
}

func TestNewSchedulerRejectsUnknownTimezone(t *testing.T) {
	_, err := NewScheduler(config.SchedulerConfig{FollowUpSchedule: "0 7 * * *", Timezone: "Mars/Olympus"}, &fakeReminders{}, nil)
	require.Error(t, err)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s, err := NewScheduler(config.SchedulerConfig{FollowUpSchedule: "every morning", Timezone: "UTC"}, &fakeReminders{}, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestStartAndStop(t *testing.T) {
	s, err := NewScheduler(config.SchedulerConfig{FollowUpSchedule: "0 7 * * *", Timezone: "Asia/Kolkata"}, &fakeReminders{}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	require.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

func TestFollowUpJobRunsInConfiguredZone(t *testing.T) {
	fake := &fakeReminders{}
	s, err := NewScheduler(config.SchedulerConfig{FollowUpSchedule: "0 7 * * *", Timezone: "Asia/Kolkata"}, fake, nil)
	require.NoError(t, err)

	s.sendFollowUpReminders()

	assert.Equal(t, 1, fake.calls)
	assert.True(t, fake.deadline)
	assert.Equal(t, "Asia/Kolkata", fake.day.Location().String())
}

func TestFollowUpJobSurvivesFailures(t *testing.T) {
	fake := &fakeReminders{err: errors.New("mongo down")}
	s, err := NewScheduler(config.SchedulerConfig{FollowUpSchedule: "0 7 * * *", Timezone: "UTC"}, fake, nil)
	require.NoError(t, err)

	assert.NotPanics(t, s.sendFollowUpReminders)

	fake.panic = true
	assert.NotPanics(t, s.sendFollowUpReminders)
	assert.Equal(t, 2, fake.calls)
}
