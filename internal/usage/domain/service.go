package domain

import (
	"context"
	"errors"
)

// IngestFileRequest carries one already-parsed export file: header plus cell
// rows. Raw byte and encoding handling belongs to the file-reading
// collaborator, never to this service.
type IngestFileRequest struct {
	OriginFile string     `json:"origin_file"`
	VendorHint string     `json:"vendor_hint"`
	Header     []string   `json:"header"`
	Rows       [][]string `json:"rows"`
}

type IngestFileResponse struct {
	BatchID     string `json:"batch_id"`
	ToolSource  string `json:"tool_source"`
	RecordCount int    `json:"record_count"`
	SkippedRows int    `json:"skipped_rows"`
}

type Service interface {
	// IngestFile normalizes and persists one export file, or reports why the
	// file was rejected. Per-row problems are skipped and counted, never
	// surfaced as errors.
	IngestFile(context.Context, IngestFileRequest) (IngestFileResponse, error)
}

type Repository interface {
	BatchInsert(context.Context, []*UsageRecord) error
	FileAlreadyProcessed(context.Context, string) (bool, error)
	MarkFileProcessed(context.Context, *ProcessedFile) error
	ReadAll(context.Context) ([]UsageRecord, error)
	CountRecords(context.Context) (int64, error)
}

var (
	// ErrDuplicateFile: origin filename already ingested. A skip, not a
	// failure; existing data is left untouched.
	ErrDuplicateFile = errors.New("duplicate_file")
	// ErrNoUsableRows: the file produced zero canonical records after
	// normalization. The file is not marked processed.
	ErrNoUsableRows = errors.New("no_usable_rows")
	// ErrUnknownFormat: no vendor layout matched the header.
	ErrUnknownFormat = errors.New("unknown_format")
	ErrInvalidFile   = errors.New("invalid_file")
)
