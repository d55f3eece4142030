package seats

import (
	"github.com/metricdeck/insights/internal/seats/service"
	"go.uber.org/fx"
)

var Module = fx.Module("seats.service",
	fx.Provide(service.NewService),
)
