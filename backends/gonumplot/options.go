package gonumplot

import (
	"fmt"
	"sort"

	"github.com/vk/figkit/figure"
)

// applyOptions applies panel layout options in key order so that a failure
// is reported deterministically.
func (p *Panel) applyOptions(kw figure.Kwargs) error {
	keys := make([]string, 0, len(kw))
	for k := range kw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := p.applyOption(k, kw[k]); err != nil {
			return fmt.Errorf("option %q: %w", k, err)
		}
	}
	return nil
}

func (p *Panel) applyOption(key string, v any) error {
	switch key {
	case "title":
		p.plot.Title.Text = fmt.Sprint(v)
	case "xlabel":
		p.setLabel("x", fmt.Sprint(v), nil)
	case "ylabel":
		p.setLabel("y", fmt.Sprint(v), nil)
	case "xlim":
		return p.setLimits("x", []any{v})
	case "ylim":
		return p.setLimits("y", []any{v})
	case "xscale":
		return p.setScale("x", fmt.Sprint(v))
	case "yscale":
		return p.setScale("y", fmt.Sprint(v))
	case "xticklabels", "yticklabels":
		labels, ok := v.([]any)
		if !ok && v != nil {
			return fmt.Errorf("expected a list of labels, got %T", v)
		}
		p.setTickLabels(key[:1], labels)
	case "facecolor":
		c, err := parseColor(v, p.cycle)
		if err != nil {
			return err
		}
		p.plot.BackgroundColor = c
	case "projection":
		if s, _ := toString(v); s != "" && s != "rectilinear" {
			return fmt.Errorf("%w: projection %q", ErrUnsupported, s)
		}
	case "zlim", "zlabel":
		return fmt.Errorf("%w: %s needs a 3d projection", ErrUnsupported, key)
	case "label", "sharex", "sharey", "frameon":
		// Accepted for compatibility; gonum panels have no counterpart.
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOption, key)
	}
	return nil
}
