package main

import (
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/analytics"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/config"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee"
	employeedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/logger"
	obsmetrics "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/observability/metrics"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/server"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage"
	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		obsmetrics.Module,

		employee.Module,
		usage.Module,
		analytics.Module,
		server.Module,

		fx.Invoke(migrate),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&employeedomain.Employee{},
		&employeedomain.DepartmentOverride{},
		&usagedomain.UsageRecord{},
		&usagedomain.ProcessedFile{},
	)
}
