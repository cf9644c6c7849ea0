// Package figure is the declarative figure-composition engine.
//
// A figure is described as an ordered list of AxesStructure values. Each
// structure names where its panel goes (Layout), which style overrides are
// active while it is built (StyleSpec), and an ordered list of instructions
// to run against the panel. The Engine walks those structures and drives a
// rendering Backend through the narrow capability contract declared in
// backend.go; it never interprets drawing verbs itself.
//
// Rendering is best-effort. A malformed structure is skipped, a failing
// instruction is logged and the loop moves on, and style overrides are
// released on every exit path. Nothing in the engine aborts a whole figure
// except the backend refusing to create it.
//
// The shape of one structure, written with the untyped constructor:
//
//	figure.AxesStructure{
//		Data: figure.MustInstructions(
//			figure.Raw{1, "plot", []any{x, y}, figure.Kwargs{"label": "line"}},
//			figure.Raw{2, "legend", nil, figure.Kwargs{"loc": "upper right"}},
//			figure.Raw{3, "twinx", nil, figure.Kwargs{"nextcolor": 1}},
//			figure.Raw{4, "plot", []any{x, z}, nil},
//			figure.Raw{5, "revise", reviseFunc, nil},
//		),
//		Layout: figure.Layout{Position: 111, Options: figure.Kwargs{"title": "T"}},
//		Style:  figure.StyleSpec{figure.StyleParams{"axes.grid": true}},
//	}
package figure
