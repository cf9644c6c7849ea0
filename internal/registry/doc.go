// Package registry connects the names used in figure files (e.g.
// revise "colorbar" { ... }) to compiled Go revise callbacks.
//
// Modules register themselves at startup through the Module interface. The
// figure file loader then looks callbacks up by name and checks the keyword
// options written next to them against the parameters each callback
// declares, so a typo in a figure file fails at load time instead of being
// silently ignored while the figure is built.
package registry
