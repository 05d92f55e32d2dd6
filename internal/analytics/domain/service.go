// Package domain defines the read-side analytics contracts: the deduplicated
// per-user view and the ROI estimate derived from persisted usage.
package domain

import (
	"context"

	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/aggregate"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/roi"
)

type UsersRequest struct {
	Top int `json:"top"`
}

type Service interface {
	// Users returns the per-user deduplicated view across all tool sources,
	// power users first.
	Users(context.Context, UsersRequest) ([]aggregate.UserUsage, error)
	// ROI estimates time and monetary value from all persisted usage under
	// the current configuration snapshot.
	ROI(context.Context) (roi.Summary, error)
}
