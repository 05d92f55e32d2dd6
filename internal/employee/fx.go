package employee

import (
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/repository"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/service"
	"go.uber.org/fx"
)

var Module = fx.Module("employee.service",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
