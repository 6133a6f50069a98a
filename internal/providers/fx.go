package providers

import (
	"github.com/freeenergie/parrainage/internal/providers/pitch"
	"github.com/freeenergie/parrainage/internal/providers/video"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	pitch.Module,
	video.Module,
)
