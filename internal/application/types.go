package application

import "imgtag/internal/domain"

// Re-export policy values for use by adapters
type Policy = domain.Policy

const (
	PolicyMerge     = domain.PolicyMerge
	PolicyOverwrite = domain.PolicyOverwrite
	PolicyAddOnly   = domain.PolicyAddOnly
)

// Re-export domain types for use by adapters
type (
	ImageAsset         = domain.ImageAsset
	TagSet             = domain.TagSet
	TagCount           = domain.TagCount
	ReconciliationPlan = domain.ReconciliationPlan
	SyncStats          = domain.SyncStats
)

// ParsePolicy converts a CLI flag value into a reconciliation policy
func ParsePolicy(s string) (Policy, error) {
	return domain.ParsePolicy(s)
}

// NewTagSet builds a normalized tag set
func NewTagSet(tags ...string) TagSet {
	return domain.NewTagSet(tags...)
}
