package system_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/devhealth/internal/system"
)

func TestMonitorInspectReportsPlaceholder(testInstance *testing.T) {
	status := system.NewMonitor().Inspect()
	require.False(testInstance, status.Implemented)
	require.Equal(testInstance, "System monitoring not implemented yet!", status.Message)
}
