package logging

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogData_CollectsFieldsAndTimings(t *testing.T) {
	logData := NewLogData(SetupLogging())

	logData.AddData("walletCount", 3)
	stopTimer := logData.AddTiming("listWalletsMs")
	time.Sleep(time.Millisecond)
	stopTimer()

	accumulate := logData.AddToExistingTiming("storageMs")
	accumulate()
	accumulate = logData.AddToExistingTiming("storageMs")
	accumulate()

	entry := logData.Log()
	assert.Equal(t, 3, entry.Data["walletCount"])
	require.Contains(t, entry.Data, "listWalletsMs")
	assert.GreaterOrEqual(t, entry.Data["listWalletsMs"].(int64), int64(1))
	assert.Contains(t, entry.Data, "storageMs")
}

func TestSetupLogging_LevelOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, logrus.DebugLevel, SetupLogging().Level)

	t.Setenv("LOG_LEVEL", "not-a-level")
	assert.Equal(t, logrus.InfoLevel, SetupLogging().Level)
}
