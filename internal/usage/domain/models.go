// Package domain contains persistence models for normalized usage and the
// service contracts around ingestion and analytics.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Feature tags on canonical records. Closed set across both vendor families.
const (
	FeatureChatGPTMessages   = "ChatGPT Messages"
	FeatureToolMessages      = "Tool Messages"
	FeatureProjectMessages   = "Project Messages"
	FeatureBlueFlameMessages = "BlueFlame Messages"
)

// Tool source labels.
const (
	SourceChatGPT   = "ChatGPT"
	SourceBlueFlame = "BlueFlame"
)

// AggregateIdentifier marks org-level records that carry no individual user.
// They never participate in per-user aggregation.
const AggregateIdentifier = "org:aggregate"

// UsageRecord is one normalized observation of usage: the canonical,
// vendor-agnostic row every downstream computation consumes.
type UsageRecord struct {
	ID             snowflake.ID      `gorm:"primaryKey"`
	UserIdentifier string            `gorm:"type:text;not null"`
	DisplayName    string            `gorm:"type:text"`
	Email          *string           `gorm:"type:text;index"`
	Department     string            `gorm:"type:text;not null"`
	OccurredOn     time.Time         `gorm:"not null;index"`
	Feature        string            `gorm:"type:text;not null"`
	Count          int64             `gorm:"not null"`
	MonetaryCost   float64           `gorm:"not null"`
	ToolSource     string            `gorm:"type:text;not null"`
	OriginFile     string            `gorm:"type:text;not null;index"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (UsageRecord) TableName() string { return "usage_records" }

// ProcessedFile records one successful ingestion per origin filename,
// enforcing at-most-once ingestion.
type ProcessedFile struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Filename    string       `gorm:"type:text;not null;uniqueIndex"`
	ToolSource  string       `gorm:"type:text;not null"`
	RecordCount int64        `gorm:"not null"`
	SkippedRows int64        `gorm:"not null"`
	ProcessedAt time.Time    `gorm:"not null"`
}

// TableName sets the database table name.
func (ProcessedFile) TableName() string { return "processed_files" }
