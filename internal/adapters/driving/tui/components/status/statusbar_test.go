package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

func TestNewBar_Defaults(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Nil(t, bar.User())
}

func TestBar_ShowsAnonymous(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	assert.Contains(t, bar.View(), "anónimo")
}

func TestBar_ShowsUsernameAndRole(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetUser(&domain.User{Username: "ana", Role: domain.RoleAdmin})
	bar.SetCurator(true)

	view := bar.View()
	assert.Contains(t, view, "ana (admin)")
	assert.Contains(t, view, "CURADOR")
}

func TestBar_ErrorAndNotice(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	bar.SetError(errors.New("Credenciales inválidas"))
	assert.Equal(t, StateError, bar.State())
	assert.Contains(t, bar.View(), "Credenciales inválidas")

	bar.SetNotice("Guardado")
	assert.Equal(t, StateNotice, bar.State())
	assert.Contains(t, bar.View(), "Guardado")

	bar.SetError(nil)
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
}

func TestBar_Loading(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)
	bar.SetLoading()

	assert.Contains(t, bar.View(), "Cargando")
}
