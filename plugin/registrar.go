package plugin

// Registrar is the type plugins see in their Register hook. Plugins call
// RegisterScreen zero or more times to publish named screen factories.
type Registrar interface {
	RegisterScreen(name string, opts ScreenOptions, factory ScreenPluginFactory)
}

// screenEntry pairs a factory with the options it was registered under.
type screenEntry struct {
	opts    ScreenOptions
	factory ScreenPluginFactory
}

// registrar is the concrete Registrar a Load call hands to a plugin's
// Register hook. Duplicate names replace the earlier entry: the
// plugin_ref namespace is flat and last-write-wins, per spec.
type registrar struct {
	screens map[string]screenEntry
}

func newRegistrar() *registrar {
	return &registrar{screens: make(map[string]screenEntry)}
}

func (r *registrar) RegisterScreen(name string, opts ScreenOptions, factory ScreenPluginFactory) {
	r.screens[name] = screenEntry{opts: opts, factory: factory}
}
