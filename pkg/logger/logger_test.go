package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Opts{Env: "production", Output: &buf})

	log.WithComponent("Provider").Info("fetch finished", "outcome", "live")

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	assert.Equal(t, "fetch finished", record["message"])
	assert.Equal(t, "Provider", record["component"])
	assert.Equal(t, "live", record["outcome"])
}

func TestNew_ProductionDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Opts{Env: "production", Output: &buf})

	log.Debug("noise")

	assert.Empty(t, buf.String())
}

func TestNew_DevelopmentUsesConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(Opts{Env: "development", Output: &buf})

	log.Printf("invoked %s", "run")

	assert.Contains(t, buf.String(), "invoked run")
}
