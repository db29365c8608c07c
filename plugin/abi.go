// Package plugin implements the plugin ABI and dynamic-library loader
// (C4): the contract every plugin shared library exposes, the registrar
// plugins use to publish screen factories, and the loader that opens a
// library, checks version compatibility, and runs its registration hook.
package plugin

import "github.com/loupedeckhost/loupedeck/host"

// ABIVersion and CoreVersion are the host's compiled-in compatibility
// strings. A plugin's PluginDeclaration must match both exactly or the
// loader rejects it with ErrVersionMismatch.
const (
	ABIVersion  = "1.0"
	CoreVersion = "1.0"
)

// ScreenPluginFactory constructs a live screen instance for a given
// context. Plugins supply one of these per registered screen name.
type ScreenPluginFactory func(ctx host.ScreenContext) host.ScreenPlugin

// ScreenOptions carries per-registration options. Exclusive is threaded
// through for future dispatch gating; current dispatch does not act on
// it.
type ScreenOptions struct {
	Exclusive bool
}

// PluginDeclaration is the value every plugin shared library must export
// under the symbol name "plugin_declaration". Register is called once,
// synchronously, with a fresh Registrar the plugin uses to publish its
// screen factories.
type PluginDeclaration struct {
	ABIVersion  string
	CoreVersion string
	PluginID    string
	Register    func(Registrar)
}

// PluginDeclarationSymbol is the exact exported symbol name the loader
// looks up via plugin.Lookup.
const PluginDeclarationSymbol = "plugin_declaration"
