package templates

import (
	"context"

	"github.com/vk/figkit/figure"
	"github.com/vk/figkit/internal/ctxlog"
	"github.com/vk/figkit/modules/suptitle"
)

// ZipItem pairs a structure, usually produced by another template, with the
// position it takes in a composite figure.
type ZipItem struct {
	Structure figure.AxesStructure
	Position  any
}

// Zip places each item's structure at its position. The position is stored
// exactly as supplied and only validated here; items with an invalid
// position are logged and dropped. A non-empty title becomes a figure
// suptitle revised by the first kept structure. The items are not modified.
func Zip(ctx context.Context, items []ZipItem, title string) ([]figure.AxesStructure, figure.StyleSpec) {
	logger := ctxlog.FromContext(ctx)
	out := make([]figure.AxesStructure, 0, len(items))

	for i, item := range items {
		pos, err := figure.ParsePosition(item.Position)
		if err != nil {
			logger.Error("Dropping item with invalid position.", "index", i, "error", err)
			continue
		}
		logger.Debug("Getting axes.", "position", pos.String())
		s := item.Structure.Clone()
		s.Layout.Position = item.Position
		out = append(out, s)
	}

	if title == "" {
		return out, nil
	}
	if len(out) == 0 {
		logger.Error("Failed to set suptitle, no structure to carry it.", "suptitle", title)
		return out, nil
	}
	first := &out[0]
	first.Data = append(first.Data, figure.Revise{
		Key:    len(first.Data) + 1,
		Fn:     suptitle.Revise,
		Kwargs: figure.Kwargs{"t": title},
	})
	return out, nil
}
