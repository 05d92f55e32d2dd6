package repository

import (
	"context"

	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db      *gorm.DB
	records repository.Repository[usagedomain.UsageRecord]
	files   repository.Repository[usagedomain.ProcessedFile]
}

func Provide(db *gorm.DB) usagedomain.Repository {
	return &repo{
		db:      db,
		records: repository.ProvideStore[usagedomain.UsageRecord](db),
		files:   repository.ProvideStore[usagedomain.ProcessedFile](db),
	}
}

func (r *repo) BatchInsert(ctx context.Context, records []*usagedomain.UsageRecord) error {
	return r.records.BatchCreate(ctx, records)
}

func (r *repo) FileAlreadyProcessed(ctx context.Context, filename string) (bool, error) {
	existing, err := r.files.FindOne(ctx, &usagedomain.ProcessedFile{Filename: filename})
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

func (r *repo) MarkFileProcessed(ctx context.Context, file *usagedomain.ProcessedFile) error {
	return r.files.Create(ctx, file)
}

func (r *repo) ReadAll(ctx context.Context) ([]usagedomain.UsageRecord, error) {
	var records []usagedomain.UsageRecord
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&records).Error
	return records, err
}

func (r *repo) CountRecords(ctx context.Context) (int64, error) {
	return r.records.Count(ctx, &usagedomain.UsageRecord{})
}
