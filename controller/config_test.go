package controller

import (
	"testing"

	"github.com/loupedeckhost/loupedeck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageConfigJSONRoundTrip(t *testing.T) {
	cfg := ControllerConfig{
		Pages: map[string]PageConfig{
			"home": {
				Name: "home",
				Screen: map[loupedeck.KeyLocation]PluginIdentifier{
					{X: 0, Y: 0}: {PluginID: "clock", PluginRef: "current-time"},
					{X: 3, Y: 2}: {PluginID: "clock", PluginRef: "current-date"},
				},
			},
		},
	}

	raw, err := SaveConfig(cfg)
	require.NoError(t, err)

	got, err := LoadConfig(raw)
	require.NoError(t, err)

	require.Contains(t, got.Pages, "home")
	page := got.Pages["home"]
	assert.Equal(t, "home", page.Name)
	assert.Equal(t, PluginIdentifier{PluginID: "clock", PluginRef: "current-time"}, page.Screen[loupedeck.KeyLocation{X: 0, Y: 0}])
	assert.Equal(t, PluginIdentifier{PluginID: "clock", PluginRef: "current-date"}, page.Screen[loupedeck.KeyLocation{X: 3, Y: 2}])
}

func TestPageConfigEmptyScreenRoundTrip(t *testing.T) {
	cfg := ControllerConfig{Pages: map[string]PageConfig{"blank": {Name: "blank", Screen: map[loupedeck.KeyLocation]PluginIdentifier{}}}}

	raw, err := SaveConfig(cfg)
	require.NoError(t, err)

	got, err := LoadConfig(raw)
	require.NoError(t, err)
	assert.Empty(t, got.Pages["blank"].Screen)
}

func TestLoadConfigRejectsMissingPages(t *testing.T) {
	_, err := LoadConfig([]byte(`{}`))
	assert.Error(t, err)
}

func TestLoadConfigRejectsMalformedScreenEntry(t *testing.T) {
	raw := []byte(`{"pages": {"home": {"name": "home", "screen": [["only-one-element"]]}}}`)
	_, err := LoadConfig(raw)
	assert.Error(t, err)
}

func TestLoadConfigRejectsNonObjectDocument(t *testing.T) {
	_, err := LoadConfig([]byte(`[]`))
	assert.Error(t, err)
}
