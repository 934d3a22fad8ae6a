package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistrostack/gastropanel/config"
)

func TestInitJobFallsBackToLocalTime(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.System.Location = "Mars/Olympus_Mons"
	a := &Application{appConfig: cfg}

	require.NotPanics(t, func() { a.initJob() })
	require.NotNil(t, a.sched)
	a.sched.Stop()
}

func TestInitJobUsesConfiguredLocation(t *testing.T) {
	cfg := config.DefaultConfig()
	a := &Application{appConfig: cfg}

	a.initJob()
	require.NotNil(t, a.sched)
	assert.Equal(t, "Europe/Warsaw", a.sched.Location().String())
	a.sched.Stop()
}
