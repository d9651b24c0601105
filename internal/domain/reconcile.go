package domain

import (
	"errors"
	"fmt"
)

// Policy governs how a proposed tag set combines with the tags already
// on a file.
type Policy int

const (
	PolicyUnknown Policy = iota
	// PolicyMerge unions proposed tags into the current set.
	PolicyMerge
	// PolicyOverwrite discards the current set in favor of the proposal.
	PolicyOverwrite
	// PolicyAddOnly applies the proposal only to files with no tags yet.
	PolicyAddOnly
)

// ErrInvalidPolicy is returned for any policy value outside the three
// defined reconciliation policies.
var ErrInvalidPolicy = errors.New("invalid reconciliation policy")

func (p Policy) String() string {
	switch p {
	case PolicyMerge:
		return "merge"
	case PolicyOverwrite:
		return "overwrite"
	case PolicyAddOnly:
		return "add-only"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a CLI flag value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "merge":
		return PolicyMerge, nil
	case "overwrite":
		return PolicyOverwrite, nil
	case "add-only", "addonly":
		return PolicyAddOnly, nil
	default:
		return PolicyUnknown, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// ReconciliationPlan is the computed outcome of applying a proposal to
// one file's current tags. It is built per file per run and discarded
// after application; Added and Removed exist for preview and summary
// reporting.
type ReconciliationPlan struct {
	Current  TagSet
	Proposed TagSet
	Policy   Policy
	Result   TagSet
	Added    []string // tags in Result but not in Current, sorted
	Removed  []string // tags in Current but not in Result, sorted
}

// Changed reports whether applying the plan would alter the file.
func (p *ReconciliationPlan) Changed() bool {
	return len(p.Added) > 0 || len(p.Removed) > 0
}

// Reconcile computes the resulting tag set for current tags C and
// proposed tags P under the given policy:
//
//	merge:     C ∪ P
//	overwrite: P
//	add-only:  P if C is empty, otherwise C unchanged
//
// The function is pure and total over the three policies; any other
// value fails with ErrInvalidPolicy.
func Reconcile(current, proposed TagSet, policy Policy) (*ReconciliationPlan, error) {
	var result TagSet
	switch policy {
	case PolicyMerge:
		result = current.Union(proposed)
	case PolicyOverwrite:
		result = proposed.Clone()
	case PolicyAddOnly:
		if current.IsEmpty() {
			result = proposed.Clone()
		} else {
			result = current.Clone()
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidPolicy, policy)
	}

	return &ReconciliationPlan{
		Current:  current,
		Proposed: proposed,
		Policy:   policy,
		Result:   result,
		Added:    result.Difference(current).Sorted(),
		Removed:  current.Difference(result).Sorted(),
	}, nil
}
