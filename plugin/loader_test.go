package plugin

import (
	"testing"

	"github.com/loupedeckhost/loupedeck"
	"github.com/loupedeckhost/loupedeck/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFactory(host.ScreenContext) host.ScreenPlugin { return nil }

func TestFromDeclarationRegistersScreens(t *testing.T) {
	decl := &PluginDeclaration{
		ABIVersion:  ABIVersion,
		CoreVersion: CoreVersion,
		PluginID:    "demo",
		Register: func(r Registrar) {
			r.RegisterScreen("one", ScreenOptions{}, testFactory)
			r.RegisterScreen("two", ScreenOptions{Exclusive: true}, testFactory)
		},
	}

	lp, err := FromDeclaration(decl)
	require.NoError(t, err)
	assert.Equal(t, "demo", lp.PluginID)
	assert.ElementsMatch(t, []string{"one", "two"}, lp.Screens())

	_, ok := lp.Factory("one")
	assert.True(t, ok)
	_, ok = lp.Factory("missing")
	assert.False(t, ok)
}

func TestFromDeclarationVersionMismatch(t *testing.T) {
	decl := &PluginDeclaration{
		ABIVersion:  "0.1",
		CoreVersion: CoreVersion,
		PluginID:    "demo",
		Register:    func(r Registrar) {},
	}

	_, err := FromDeclaration(decl)
	assert.ErrorIs(t, err, loupedeck.ErrVersionMismatch)
}

func TestRegisterScreenLastWriteWins(t *testing.T) {
	decl := &PluginDeclaration{
		ABIVersion:  ABIVersion,
		CoreVersion: CoreVersion,
		PluginID:    "demo",
		Register: func(r Registrar) {
			r.RegisterScreen("dup", ScreenOptions{}, testFactory)
			r.RegisterScreen("dup", ScreenOptions{Exclusive: true}, testFactory)
		},
	}

	lp, err := FromDeclaration(decl)
	require.NoError(t, err)
	assert.Equal(t, []string{"dup"}, lp.Screens())
}

func TestRegistryStoreReplacesPreviousRecord(t *testing.T) {
	reg := NewRegistry()
	first := &LoadedPlugin{PluginID: "demo", screens: map[string]screenEntry{"a": {factory: testFactory}}}
	second := &LoadedPlugin{PluginID: "demo", screens: map[string]screenEntry{"b": {factory: testFactory}}}

	reg.Store(first)
	reg.Store(second)

	got, ok := reg.Get("demo")
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, got.Screens())
}
