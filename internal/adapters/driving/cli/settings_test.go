package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/services"
)

func TestSettingsShow(t *testing.T) {
	setupTestServices(t, testAdmin)

	out, err := execute(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, services.KeyAPIURL)
	assert.Contains(t, out, domain.DefaultSettings().API.BaseURL)
	assert.Contains(t, out, "unlimited")
	assert.Contains(t, out, "Config file: :memory:")
	assert.Contains(t, out, "Session:     ana (admin)")
}

func TestSettingsSet(t *testing.T) {
	ts := setupTestServices(t, nil)

	out, err := execute(t, "", "settings", "set", services.KeyBulkConcurrency, "4")

	require.NoError(t, err)
	assert.Contains(t, out, "curator.bulk_concurrency = 4")
	settings, err := ts.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 4, settings.Curator.BulkConcurrency)
}

func TestSettingsSet_Invalid(t *testing.T) {
	setupTestServices(t, nil)

	_, err := execute(t, "", "settings", "set", services.KeyAPITimeout, "soon")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "", "settings", "set", "unknown.key", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsPath(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "", "settings", "path")

	require.NoError(t, err)
	assert.Contains(t, out, ":memory:")
}
