package app

import (
	"github.com/vk/figkit/internal/registry"
	"github.com/vk/figkit/modules/colorbar"
	"github.com/vk/figkit/modules/suptitle"
	"github.com/vk/figkit/modules/xlim"
)

// coreModules is the definitive list of all revise modules compiled into
// the figkit binary.
var coreModules = []registry.Module{
	&colorbar.Module{},
	&suptitle.Module{},
	&xlim.Module{},
}
