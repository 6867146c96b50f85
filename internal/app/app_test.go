package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplicationWiring(t *testing.T) {
	t.Setenv("CHARTSCOUT_CONFIG", filepath.Join(t.TempDir(), "absent.yml"))
	t.Setenv("CHARTSCOUT_STORE_EXAMPLES_DIR", t.TempDir())

	app, err := NewApplication()
	require.NoError(t, err)
	defer app.Shutdown()

	assert.NotNil(t, app.Server)
	assert.NotNil(t, app.Hub)
	assert.NotNil(t, app.Manager)
	assert.NotNil(t, app.Orchestrator)
	assert.Equal(t, ":8080", app.Server.Addr)
}
