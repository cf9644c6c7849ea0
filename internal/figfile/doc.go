// Package figfile loads declarative figure files written in HCL.
//
// A figure file declares one or more figures. Each figure lists its panels
// as axes blocks, and each axes block lists its instructions as nested
// blocks in execution order. The block type is the verb, every attribute
// except args becomes a keyword option, and order keys are assigned from
// the position of the block inside its axes block, starting at 1:
//
//	figure "overview" {
//	  style = ["default", { "lines.linewidth" = 2 }]
//
//	  axes {
//	    position = 211
//	    options  = { title = "Signal" }
//
//	    plot {
//	      args  = [linspace(0, 1, 5), [1, 3, 2, 5, 4]]
//	      label = "raw"
//	    }
//	    legend { loc = "upper left" }
//	    twinx { nextcolor = 1 }
//	    revise "colorbar" { label = "z" }
//	  }
//	}
//
// A revise block names a callback registered in an internal/registry
// Registry; its attributes are checked against the callback's declared
// parameters at load time.
package figfile
