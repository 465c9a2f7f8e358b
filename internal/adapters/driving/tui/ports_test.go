package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving/drivingtest"
)

func TestPorts_Validate(t *testing.T) {
	session := drivingtest.NewSession(nil)
	articles := drivingtest.NewArticles()

	assert.NoError(t, (&Ports{Session: session, Articles: articles}).Validate())

	err := (&Ports{Articles: articles}).Validate()
	assert.ErrorIs(t, err, ErrInvalidPorts)
	assert.ErrorIs(t, err, ErrMissingSessionService)

	err = (&Ports{Session: session}).Validate()
	assert.ErrorIs(t, err, ErrMissingArticleService)

	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.Validate(), ErrInvalidPorts)
}
