package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/sysctl-control/internal/app"
	"github.com/atomicstack/sysctl-control/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	require.Len(t, info.Probes, 3)
	for i, name := range []string{"stdin", "stdout", "stderr"} {
		assert.Equal(t, name, info.Probes[i].Name, "probe %d", i)
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Root:           "/proc/sys",
			Section:        "vm",
			ShowFooter:     true,
			TickRate:       250 * time.Millisecond,
			MessageTimeout: 2 * time.Second,
			Clipboard:      true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "/etc/sysctl-control.yaml",
		Flags: map[string]string{
			"root":      "/proc/sys",
			"section":   "vm",
			"footer":    "true",
			"tick-rate": "250",
		},
		Args: []string{"--section", "vm"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	require.True(t, ok, "flags map in payload")
	assert.Equal(t, "/proc/sys", flagsValue["root"])
	assert.Equal(t, "vm", flagsValue["section"])
	assert.Equal(t, "250", flagsValue["tick-rate"])
	assert.Equal(t, "true", flagsValue["footer"])
	assert.Equal(t, true, flagsValue["trace"])
	assert.Equal(t, "trace.log", flagsValue["logFile"])
	assert.Equal(t, "/etc/sysctl-control.yaml", payload["configFile"])

	assert.IsType(t, ttyDetails{}, payload["tty"])
	cfgValue, ok := payload["config"].(config.Config)
	require.True(t, ok, "config in payload")
	assert.Equal(t, cfg.App, cfgValue.App)
}
