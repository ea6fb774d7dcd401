package monitor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/monitor"
	"github.com/railwatch/railwatch/pkg/rail"
)

var evalTime = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func TestNormalize_MissingScheduledTime(t *testing.T) {
	_, err := monitor.Normalize(rail.Service{ETD: "On time"}, "BCE", "WAT", evalTime)
	require.Error(t, err)
	assert.ErrorIs(t, err, monitor.ErrDataShape)
}

func TestNormalize_UnparseableScheduledTime(t *testing.T) {
	_, err := monitor.Normalize(rail.Service{STD: "soon"}, "BCE", "WAT", evalTime)
	assert.ErrorIs(t, err, monitor.ErrDataShape)
}

func TestNormalize_OnTime(t *testing.T) {
	status, err := monitor.Normalize(rail.Service{STD: "08:30", ETD: "On time"}, "bce", "wat", evalTime)
	require.NoError(t, err)

	assert.Equal(t, model.StatusOnTime, status.Kind)
	assert.Equal(t, time.Duration(0), status.Delay)
	assert.Equal(t, time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC), status.Scheduled)
	assert.Equal(t, "BCE", status.Origin)
	assert.Equal(t, "WAT", status.Destination)
	assert.False(t, status.PlatformAssigned())
}

func TestNormalize_EstimateEqualsScheduled(t *testing.T) {
	status, err := monitor.Normalize(rail.Service{STD: "08:30", ETD: "08:30"}, "BCE", "WAT", evalTime)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOnTime, status.Kind)
}

func TestNormalize_Delayed(t *testing.T) {
	status, err := monitor.Normalize(rail.Service{STD: "08:30", ETD: "08:37"}, "BCE", "WAT", evalTime)
	require.NoError(t, err)

	assert.Equal(t, model.StatusDelayed, status.Kind)
	assert.Equal(t, 7*time.Minute, status.Delay)
}

func TestNormalize_EarlyIsOnTime(t *testing.T) {
	status, err := monitor.Normalize(rail.Service{STD: "08:30", ETD: "08:28"}, "BCE", "WAT", evalTime)
	require.NoError(t, err)

	assert.Equal(t, model.StatusOnTime, status.Kind)
	assert.Equal(t, time.Duration(0), status.Delay)
}

func TestNormalize_DelayAcrossMidnight(t *testing.T) {
	status, err := monitor.Normalize(rail.Service{STD: "23:55", ETD: "00:05"}, "BCE", "WAT", evalTime)
	require.NoError(t, err)

	assert.Equal(t, model.StatusDelayed, status.Kind)
	assert.Equal(t, 10*time.Minute, status.Delay)
}

func TestNormalize_IndeterminateDelayToken(t *testing.T) {
	status, err := monitor.Normalize(rail.Service{STD: "08:30", ETD: "Delayed"}, "BCE", "WAT", evalTime)
	require.NoError(t, err)

	assert.Equal(t, model.StatusDelayed, status.Kind)
	assert.Equal(t, time.Duration(0), status.Delay)
}

func TestNormalize_CancelledFlag(t *testing.T) {
	status, err := monitor.Normalize(rail.Service{STD: "08:30", ETD: "08:45", IsCancelled: true}, "BCE", "WAT", evalTime)
	require.NoError(t, err)

	assert.Equal(t, model.StatusCancelled, status.Kind)
	assert.Equal(t, time.Duration(0), status.Delay, "cancellation wins over the delay estimate")
}

func TestNormalize_CancelledText(t *testing.T) {
	status, err := monitor.Normalize(rail.Service{STD: "08:30", ETD: "CANCELLED"}, "BCE", "WAT", evalTime)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, status.Kind)
}

func TestNormalize_PlatformPassthrough(t *testing.T) {
	p := "5"
	status, err := monitor.Normalize(rail.Service{STD: "08:30", ETD: "On time", Platform: &p}, "BCE", "WAT", evalTime)
	require.NoError(t, err)

	require.True(t, status.PlatformAssigned())
	assert.Equal(t, "5", *status.Platform)
}

func TestNormalize_UnrecognizedEstimateIsOnTime(t *testing.T) {
	status, err := monitor.Normalize(rail.Service{STD: "08:30", ETD: "No report"}, "BCE", "WAT", evalTime)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOnTime, status.Kind)
}
