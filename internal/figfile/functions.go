package figfile

import (
	"fmt"

	"github.com/aclements/go-moremath/vec"
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// linspaceFunc returns num evenly spaced numbers over [start, stop].
var linspaceFunc = function.New(&function.Spec{
	Description: "Returns num evenly spaced numbers between start and stop, inclusive.",
	Params: []function.Parameter{
		{Name: "start", Type: cty.Number},
		{Name: "stop", Type: cty.Number},
		{Name: "num", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.List(cty.Number)),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		var start, stop float64
		var num int
		if err := gocty.FromCtyValue(args[0], &start); err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		if err := gocty.FromCtyValue(args[1], &stop); err != nil {
			return cty.NilVal, function.NewArgError(1, err)
		}
		if err := gocty.FromCtyValue(args[2], &num); err != nil {
			return cty.NilVal, function.NewArgError(2, err)
		}
		if num < 0 {
			return cty.NilVal, function.NewArgErrorf(2, "num must not be negative, got %d", num)
		}
		if num == 0 {
			return cty.ListValEmpty(cty.Number), nil
		}
		out := make([]cty.Value, 0, num)
		for _, x := range vec.Linspace(start, stop, num) {
			out = append(out, cty.NumberFloatVal(x))
		}
		return cty.ListVal(out), nil
	},
})

// functions returns the functions available to figure file expressions.
func functions() map[string]function.Function {
	return map[string]function.Function{
		"linspace": linspaceFunc,
		"range":    stdlib.RangeFunc,
		"concat":   stdlib.ConcatFunc,
		"reverse":  stdlib.ReverseListFunc,
		"length":   stdlib.LengthFunc,
		"abs":      stdlib.AbsoluteFunc,
		"min":      stdlib.MinFunc,
		"max":      stdlib.MaxFunc,
		"upper":    stdlib.UpperFunc,
		"lower":    stdlib.LowerFunc,
		"format":   stdlib.FormatFunc,
	}
}

func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{Functions: functions()}
}

// evaluate returns the native value of expr. A null result is reported as
// not set.
func evaluate(expr hcl.Expression, ectx *hcl.EvalContext) (any, bool, error) {
	if expr == nil {
		return nil, false, nil
	}
	val, diags := expr.Value(ectx)
	if diags.HasErrors() {
		return nil, false, diags
	}
	if val.IsNull() {
		return nil, false, nil
	}
	native, err := ctyToNative(val)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", expr.Range(), err)
	}
	return native, true, nil
}
