// Package templates synthesizes figure.AxesStructure lists for common chart
// shapes: labelled line plots, pseudocolor and surface plots, stacked rows of
// shared-x panels with twin y axes, and composite grids built from other
// templates.
//
// Every generator is a pure function of its input. It returns the
// structures together with the figure-level style they expect, and logs
// through the logger carried by the context.
package templates
