package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/mcp"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServe_RequiresArticles(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "", "mcp", "serve")

	assert.ErrorIs(t, err, mcp.ErrMissingArticleService)
}

func TestMCPServe_InvalidPort(t *testing.T) {
	setupTestServices(t, nil)

	_, err := execute(t, "", "mcp", "serve", "--port", "70000")

	assert.ErrorContains(t, err, "port must be between")
}
