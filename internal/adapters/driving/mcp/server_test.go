package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving/drivingtest"
)

func TestNewServer(t *testing.T) {
	t.Run("nil article service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingArticleService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Articles: drivingtest.NewArticles()})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.Validate(), ErrMissingArticleService)
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingArticleService)
	assert.NoError(t, (&Ports{Articles: drivingtest.NewArticles()}).Validate())
	assert.NoError(t, (&Ports{
		Articles: drivingtest.NewArticles(),
		Sources:  drivingtest.NewSources(),
	}).Validate())
}
