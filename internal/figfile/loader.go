package figfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/ctxlog"
	"github.com/vk/figkit/internal/fsutil"
	"github.com/vk/figkit/internal/registry"
)

// Figure is one figure declared in a figure file.
type Figure struct {
	ID         string
	Source     string
	Style      figure.StyleSpec
	Structures []figure.AxesStructure
}

// Loader turns figure files into figure structures.
type Loader struct {
	revisions *registry.Registry
}

// NewLoader creates a loader that resolves revise blocks through reg.
func NewLoader(reg *registry.Registry) *Loader {
	return &Loader{revisions: reg}
}

// fileRoot decodes the top-level blocks of a figure file.
type fileRoot struct {
	Figures []*figureBlock `hcl:"figure,block"`
}

type figureBlock struct {
	ID    string         `hcl:"id,label"`
	Style hcl.Expression `hcl:"style,optional"`
	Axes  []*axesBlock   `hcl:"axes,block"`
}

type axesBlock struct {
	Position hcl.Expression `hcl:"position,optional"`
	Options  hcl.Expression `hcl:"options,optional"`
	Style    hcl.Expression `hcl:"style,optional"`
	Remain   hcl.Body       `hcl:",remain"`
}

var axesAttributes = map[string]bool{"position": true, "options": true, "style": true}

// Load parses every .hcl file under paths, in path order and then lexical
// order within a directory. Figure ids must be unique across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]Figure, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Figure file loader started.", "path_count", len(paths))

	files, err := findFigureFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered figure files.", "count", len(files))

	parser := hclparse.NewParser()
	var figures []Figure
	seen := make(map[string]string)
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse figure file %s: %w", file, diags)
		}
		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode figure file %s: %w", file, diags)
		}
		for _, fb := range root.Figures {
			if prev, dup := seen[fb.ID]; dup {
				return nil, fmt.Errorf("figure '%s' in %s already declared in %s", fb.ID, file, prev)
			}
			seen[fb.ID] = file
			fig, err := l.translateFigure(ctx, fb)
			if err != nil {
				return nil, fmt.Errorf("%s: figure '%s': %w", file, fb.ID, err)
			}
			fig.Source = file
			figures = append(figures, fig)
		}
	}

	logger.Debug("Figure file loading complete.", "figures", len(figures))
	return figures, nil
}

func findFigureFiles(paths []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

func (l *Loader) translateFigure(ctx context.Context, fb *figureBlock) (Figure, error) {
	ectx := newEvalContext()
	fig := Figure{ID: fb.ID}

	style, err := evalStyle(fb.Style, ectx)
	if err != nil {
		return fig, fmt.Errorf("style: %w", err)
	}
	fig.Style = style

	for i, ab := range fb.Axes {
		s, err := l.translateAxes(ctx, ab, ectx)
		if err != nil {
			return fig, fmt.Errorf("axes %d: %w", i, err)
		}
		fig.Structures = append(fig.Structures, s)
	}
	return fig, nil
}

func (l *Loader) translateAxes(ctx context.Context, ab *axesBlock, ectx *hcl.EvalContext) (figure.AxesStructure, error) {
	logger := ctxlog.FromContext(ctx)
	var s figure.AxesStructure

	raw, ok, err := evaluate(ab.Position, ectx)
	if err != nil {
		return s, fmt.Errorf("position: %w", err)
	}
	if !ok {
		return s, errors.New("position is required")
	}
	pos, err := positionFromValue(raw)
	if err != nil {
		return s, fmt.Errorf("position: %w", err)
	}
	s.Layout.Position = pos

	raw, ok, err = evaluate(ab.Options, ectx)
	if err != nil {
		return s, fmt.Errorf("options: %w", err)
	}
	if ok {
		m, isMap := raw.(map[string]any)
		if !isMap {
			return s, fmt.Errorf("options: expected an object, got %T", raw)
		}
		s.Layout.Options = figure.Kwargs(m)
	}

	if s.Style, err = evalStyle(ab.Style, ectx); err != nil {
		return s, fmt.Errorf("style: %w", err)
	}

	body, ok := ab.Remain.(*hclsyntax.Body)
	if !ok {
		return s, fmt.Errorf("unsupported body type %T", ab.Remain)
	}
	for name, attr := range body.Attributes {
		if !axesAttributes[name] {
			return s, fmt.Errorf("%s: unsupported attribute '%s'", attr.SrcRange, name)
		}
	}
	for i, block := range body.Blocks {
		ins, err := l.translateInstruction(i+1, block, ectx)
		if err != nil {
			return s, fmt.Errorf("%s: %w", block.DefRange(), err)
		}
		logger.Debug("Translated instruction.", "order", ins.Order(), "verb", ins.Verb(), "position", pos.String())
		s.Data = append(s.Data, ins)
	}
	return s, nil
}

func (l *Loader) translateInstruction(order int, block *hclsyntax.Block, ectx *hcl.EvalContext) (figure.Instruction, error) {
	if len(block.Body.Blocks) > 0 {
		return nil, fmt.Errorf("instruction '%s' must not contain blocks", block.Type)
	}

	var args any
	kw := figure.Kwargs{}
	names := make([]string, 0, len(block.Body.Attributes))
	for name := range block.Body.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, ok, err := evaluate(block.Body.Attributes[name].Expr, ectx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if !ok {
			continue
		}
		if name == "args" {
			args = v
			continue
		}
		kw[name] = v
	}

	if block.Type == figure.VerbRevise {
		if len(block.Labels) != 1 {
			return nil, errors.New("revise block needs exactly one label naming the revision")
		}
		if args != nil {
			return nil, errors.New("revise block does not take args")
		}
		name := block.Labels[0]
		if err := l.revisions.Validate(name, kw); err != nil {
			return nil, err
		}
		fn, _ := l.revisions.Lookup(name)
		return figure.Revise{Key: order, Fn: fn, Kwargs: kw}, nil
	}
	if len(block.Labels) > 0 {
		return nil, fmt.Errorf("instruction '%s' takes no labels", block.Type)
	}
	return figure.NewInstruction(order, block.Type, args, kw)
}

func evalStyle(expr hcl.Expression, ectx *hcl.EvalContext) (figure.StyleSpec, error) {
	raw, ok, err := evaluate(expr, ectx)
	if err != nil || !ok {
		return nil, err
	}
	var entries []any
	switch v := raw.(type) {
	case []any:
		entries = v
	default:
		entries = []any{v}
	}
	for _, e := range entries {
		switch e.(type) {
		case string, map[string]any:
		default:
			return nil, fmt.Errorf("entry %v is neither a style name nor a parameter object", e)
		}
	}
	return figure.Styles(entries...), nil
}

// positionFromValue accepts a subplot code, a [left, bottom, width, height]
// rectangle or a grid object with rows, cols, row, col, rowspan and colspan.
func positionFromValue(v any) (figure.Position, error) {
	switch p := v.(type) {
	case []any:
		rect := make([]float64, 0, len(p))
		for _, x := range p {
			switch n := x.(type) {
			case int:
				rect = append(rect, float64(n))
			case float64:
				rect = append(rect, n)
			default:
				return nil, fmt.Errorf("rectangle values must be numbers, got %T", x)
			}
		}
		return figure.ParsePosition(rect)
	case map[string]any:
		var g figure.GridSpec
		fields := map[string]*int{
			"rows": &g.Rows, "cols": &g.Cols,
			"row": &g.Row, "col": &g.Col,
			"rowspan": &g.RowSpan, "colspan": &g.ColSpan,
		}
		for k, x := range p {
			dst, ok := fields[k]
			if !ok {
				return nil, fmt.Errorf("unknown grid field '%s'", k)
			}
			n, ok := x.(int)
			if !ok {
				return nil, fmt.Errorf("grid field '%s' must be an integer", k)
			}
			*dst = n
		}
		return figure.ParsePosition(g)
	}
	return figure.ParsePosition(v)
}
