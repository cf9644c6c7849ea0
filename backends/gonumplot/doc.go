// Package gonumplot is a figure.Backend that renders with gonum.org/v1/plot.
//
// Every primary panel is one *plot.Plot placed on the figure canvas by
// subplot code, grid spec or explicit rectangle. Twin panels are separate
// plots drawn into the data area of their primary panel; their independent
// axis is drawn by this package on the right (twinx) or top (twiny).
//
// The style stack holds flat parameter maps keyed like "lines.linewidth".
// Figures and panels copy the parameters active when they are created.
//
// Display depends on the mode: "file" writes a PNG and returns its path,
// "socketio" pushes an SVG to a viewer and waits for the "figure:shown"
// acknowledgement. 3d projections are not supported.
package gonumplot
