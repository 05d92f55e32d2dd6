package analytics

import (
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/analytics/service"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/roi"
	"go.uber.org/fx"
)

var Module = fx.Module("analytics.service",
	fx.Provide(
		roi.NewHolder,
		service.NewService,
	),
)
