package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{"quit", km.Quit.Keys(), []string{"q", "ctrl+c"}},
		{"back", km.Back.Keys(), []string{"esc"}},
		{"up", km.Up.Keys(), []string{"up", "k"}},
		{"down", km.Down.Keys(), []string{"down", "j"}},
		{"curator", km.Curator.Keys(), []string{"c"}},
		{"mark", km.Mark.Keys(), []string{" "}},
		{"save", km.Save.Keys(), []string{"ctrl+s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.want {
				assert.Contains(t, tt.keys, k)
			}
		})
	}
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 3)
	assert.Contains(t, km.CuratorHelp(), km.Delete)
	assert.Contains(t, km.EditorHelp(), km.Refine)
	assert.Len(t, km.FullHelp(), 5)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("D", km.Delete))
	assert.False(t, Matches("d", km.Delete))
	assert.False(t, Matches("z", km.Quit))
}
