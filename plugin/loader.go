package plugin

import (
	"fmt"
	"log/slog"
	"plugin"

	"github.com/google/uuid"
	"github.com/loupedeckhost/loupedeck"
)

// LoadedPlugin is the registry record for one loaded shared library: its
// declared id, the screen factories it registered, and the library
// handle, which outlives every factory derived from it (the Go runtime
// keeps a *plugin.Plugin's symbols valid for the process lifetime once
// opened, so no explicit unload path exists here, matching spec.md's
// unload-is-unsafe design note).
type LoadedPlugin struct {
	PluginID string
	screens  map[string]screenEntry
	handle   *plugin.Plugin
}

// Screens lists the names a loaded plugin registered.
func (lp *LoadedPlugin) Screens() []string {
	names := make([]string, 0, len(lp.screens))
	for name := range lp.screens {
		names = append(names, name)
	}
	return names
}

// Factory returns the factory registered under name, if any.
func (lp *LoadedPlugin) Factory(name string) (ScreenPluginFactory, bool) {
	e, ok := lp.screens[name]
	if !ok {
		return nil, false
	}
	return e.factory, true
}

// Load opens the shared library at path, verifies its PluginDeclaration
// against the host's compiled-in ABI/core versions, and runs its
// Register hook to completion. Re-loading a plugin with the same id is
// the caller's responsibility (Registry.Store replaces the previous
// record); instances derived from the previous record remain valid
// because their library handle is independently referenced.
func Load(path string) (*LoadedPlugin, error) {
	generation := uuid.New()
	slog.Info("loading plugin", "path", path, "generation", generation)

	handle, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("plugin: open %q: %w", path, err)
	}

	sym, err := handle.Lookup(PluginDeclarationSymbol)
	if err != nil {
		return nil, fmt.Errorf("plugin: lookup %q in %q: %w", PluginDeclarationSymbol, path, err)
	}

	decl, ok := sym.(*PluginDeclaration)
	if !ok {
		return nil, fmt.Errorf("plugin: %q's %s has the wrong type", path, PluginDeclarationSymbol)
	}

	lp, err := FromDeclaration(decl)
	if err != nil {
		return nil, fmt.Errorf("plugin: %q: %w", path, err)
	}
	lp.handle = handle

	slog.Info("plugin loaded", "plugin_id", lp.PluginID, "screens", len(lp.screens), "generation", generation)
	return lp, nil
}

// FromDeclaration runs the version check and registration hook directly
// against an already-obtained PluginDeclaration, bypassing plugin.Open.
// Load uses this after resolving the symbol from a shared library; it's
// also the entry point for plugins linked statically into the host
// binary rather than loaded as a separate .so.
func FromDeclaration(decl *PluginDeclaration) (*LoadedPlugin, error) {
	if decl.ABIVersion != ABIVersion || decl.CoreVersion != CoreVersion {
		return nil, fmt.Errorf("declares abi=%s core=%s, host wants abi=%s core=%s: %w",
			decl.ABIVersion, decl.CoreVersion, ABIVersion, CoreVersion, loupedeck.ErrVersionMismatch)
	}

	reg := newRegistrar()
	decl.Register(reg)

	return &LoadedPlugin{
		PluginID: decl.PluginID,
		screens:  reg.screens,
	}, nil
}
