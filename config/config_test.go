package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillDefaults_LeavesExplicitValuesAlone(t *testing.T) {
	s := Store{
		Keyboard: Keyboard{DefaultKeyAction: KeyActionDelayedStroke},
	}
	out := s.FillDefaults()
	assert.Equal(t, KeyActionDelayedStroke, out.Keyboard.DefaultKeyAction)
	assert.Equal(t, TouchInputSingle, out.Keyboard.TouchInput)
	assert.Equal(t, RepositionPreventOcclusion, out.AutoShow.RepositionMethodFloating)
	assert.Equal(t, 5, out.WordSuggestions.MaxWordChoices)
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "onboardosk.toml")

	original := Default()
	original.Keyboard.LongPressDelay = 640
	original.WordSuggestions.MaxWordChoices = 8

	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, loaded.Keyboard.LongPressDelay)
	assert.Equal(t, 8, loaded.WordSuggestions.MaxWordChoices)
	assert.Equal(t, original.AutoShow.Enabled, loaded.AutoShow.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}
