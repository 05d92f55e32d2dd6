package service

import (
	"context"
	"errors"
	"time"

	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/config"
	employeedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/identity"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/normalizer"
	obsmetrics "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/observability/metrics"
	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Cfg         config.Config
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        usagedomain.Repository
	EmployeeSvc employeedomain.Service
	Metrics     *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log *zap.Logger

	cfg         config.Config
	genID       *snowflake.Node
	repo        usagedomain.Repository
	employeeSvc employeedomain.Service
	metrics     *obsmetrics.Metrics
}

func NewService(p ServiceParam) usagedomain.Service {
	return &Service{
		log: p.Log.Named("usage.service"),

		cfg:         p.Cfg,
		genID:       p.GenID,
		repo:        p.Repo,
		employeeSvc: p.EmployeeSvc,
		metrics:     p.Metrics,
	}
}

// IngestFile runs the full normalization pipeline for one export file:
// duplicate-filename gate, vendor detection, row normalization against a
// batch-scoped roster snapshot, then a single transactional persist.
func (s *Service) IngestFile(ctx context.Context, req usagedomain.IngestFileRequest) (usagedomain.IngestFileResponse, error) {
	if req.OriginFile == "" || len(req.Header) == 0 {
		return usagedomain.IngestFileResponse{}, usagedomain.ErrInvalidFile
	}
	if len(req.Rows) == 0 {
		s.rejectFile("no_usable_rows")
		return usagedomain.IngestFileResponse{}, usagedomain.ErrNoUsableRows
	}

	// At-most-once ingestion per filename. A duplicate is a skip, not a
	// failure; whatever was ingested before stays untouched.
	processed, err := s.repo.FileAlreadyProcessed(ctx, req.OriginFile)
	if err != nil {
		return usagedomain.IngestFileResponse{}, err
	}
	if processed {
		s.rejectFile("duplicate_file")
		return usagedomain.IngestFileResponse{}, usagedomain.ErrDuplicateFile
	}

	normCtx, err := s.buildNormalizerContext(ctx)
	if err != nil {
		return usagedomain.IngestFileResponse{}, err
	}

	table := normalizer.Table{Header: req.Header, Rows: req.Rows}
	strategy, err := normalizer.Detect(normCtx, table, req.VendorHint)
	if err != nil {
		s.rejectFile("unknown_format")
		return usagedomain.IngestFileResponse{}, err
	}

	result, err := strategy.Normalize(table, req.OriginFile)
	if err != nil {
		if errors.Is(err, usagedomain.ErrUnknownFormat) {
			s.rejectFile("unknown_format")
		}
		return usagedomain.IngestFileResponse{}, err
	}
	if len(result.Records) == 0 {
		s.rejectFile("no_usable_rows")
		return usagedomain.IngestFileResponse{}, usagedomain.ErrNoUsableRows
	}

	now := time.Now().UTC()
	for _, record := range result.Records {
		record.ID = s.genID.Generate()
		record.CreatedAt = now
	}
	if err := s.repo.BatchInsert(ctx, result.Records); err != nil {
		return usagedomain.IngestFileResponse{}, err
	}
	if err := s.repo.MarkFileProcessed(ctx, &usagedomain.ProcessedFile{
		ID:          s.genID.Generate(),
		Filename:    req.OriginFile,
		ToolSource:  strategy.Source(),
		RecordCount: int64(len(result.Records)),
		SkippedRows: int64(result.SkippedRows),
		ProcessedAt: now,
	}); err != nil {
		return usagedomain.IngestFileResponse{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordIngest(strategy.Source(), len(result.Records), result.SkippedRows)
	}

	batchID := uuid.NewString()
	s.log.Info("file ingested",
		zap.String("batch_id", batchID),
		zap.String("origin_file", req.OriginFile),
		zap.String("tool_source", strategy.Source()),
		zap.Int("records", len(result.Records)),
		zap.Int("skipped_rows", result.SkippedRows),
	)
	return usagedomain.IngestFileResponse{
		BatchID:     batchID,
		ToolSource:  strategy.Source(),
		RecordCount: len(result.Records),
		SkippedRows: result.SkippedRows,
	}, nil
}

// buildNormalizerContext loads a fresh roster snapshot and override mapping.
// Both are read-only for the scope of this one file.
func (s *Service) buildNormalizerContext(ctx context.Context) (normalizer.Context, error) {
	roster, err := s.employeeSvc.Roster(ctx)
	if err != nil {
		return normalizer.Context{}, err
	}
	overrides, err := s.employeeSvc.Overrides(ctx)
	if err != nil {
		return normalizer.Context{}, err
	}
	return normalizer.Context{
		Roster:      identity.NewSnapshot(roster),
		Overrides:   overrides,
		LicenseRate: s.cfg.OpenAILicenseRate,
		Log:         s.log,
	}, nil
}

func (s *Service) rejectFile(reason string) {
	if s.metrics != nil {
		s.metrics.RecordRejectedFile(reason)
	}
}
