package usage

import (
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/repository"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/service"
	"go.uber.org/fx"
)

var Module = fx.Module("usage.service",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
