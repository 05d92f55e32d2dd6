package service

import (
	"context"

	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/aggregate"
	analyticsdomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/analytics/domain"
	employeedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/identity"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/roi"
	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log         *zap.Logger
	UsageRepo   usagedomain.Repository
	EmployeeSvc employeedomain.Service
	ROIHolder   *roi.Holder
}

type Service struct {
	log *zap.Logger

	usageRepo   usagedomain.Repository
	employeeSvc employeedomain.Service
	roiHolder   *roi.Holder
}

func NewService(p ServiceParam) analyticsdomain.Service {
	return &Service{
		log: p.Log.Named("analytics.service"),

		usageRepo:   p.UsageRepo,
		employeeSvc: p.EmployeeSvc,
		roiHolder:   p.ROIHolder,
	}
}

func (s *Service) Users(ctx context.Context, req analyticsdomain.UsersRequest) ([]aggregate.UserUsage, error) {
	records, err := s.usageRepo.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	// A fresh roster snapshot lets the aggregator re-resolve departments per
	// group instead of trusting the raw rows' first non-placeholder value.
	roster, err := s.employeeSvc.Roster(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := s.employeeSvc.Overrides(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.Aggregate(records, aggregate.Options{
		Roster:    identity.NewSnapshot(roster),
		Overrides: overrides,
		Top:       req.Top,
	}), nil
}

func (s *Service) ROI(ctx context.Context) (roi.Summary, error) {
	records, err := s.usageRepo.ReadAll(ctx)
	if err != nil {
		return roi.Summary{}, err
	}
	return roi.Estimate(records, s.roiHolder.Get()), nil
}
