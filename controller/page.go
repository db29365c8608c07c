package controller

import (
	"github.com/loupedeckhost/loupedeck"
	"github.com/loupedeckhost/loupedeck/host"
)

// Page is a named set of live plugin instances bound to key locations.
// It is materialised from a PageConfig by SetCurrentPage and replaced
// wholesale on the next page swap.
type Page struct {
	Name      string
	Instances map[loupedeck.KeyLocation]host.ScreenPlugin
}
