package domain

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// DuplicatePolicy decides what happens when a requested filename
// matches more than one file under the search root.
type DuplicatePolicy int

const (
	DuplicateUnknown DuplicatePolicy = iota
	// DuplicateFirst stages only the lexicographically first match.
	DuplicateFirst
	// DuplicateAll stages every match, disambiguating destinations.
	DuplicateAll
	// DuplicateSkip stages nothing and records the name as ambiguous.
	DuplicateSkip
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateFirst:
		return "first"
	case DuplicateAll:
		return "all"
	case DuplicateSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseDuplicatePolicy converts a CLI flag value.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "first":
		return DuplicateFirst, nil
	case "all":
		return DuplicateAll, nil
	case "skip":
		return DuplicateSkip, nil
	default:
		return DuplicateUnknown, fmt.Errorf("invalid duplicate policy: %q", s)
	}
}

// DuplicateGroup maps one requested filename to every canonical path
// sharing it under the search root, in lexicographic order.
type DuplicateGroup struct {
	Name    string
	Matches []string
}

// CopyAction is one staged destination write of a collection or
// sorted-view plan.
type CopyAction struct {
	Src string // canonical source path
	Dst string // destination path
}

// CollectionPlan is the reviewable outcome of resolving a name list
// against a file tree. Nothing has touched the filesystem yet.
type CollectionPlan struct {
	Actions   []CopyAction
	Missing   []string         // requested names with zero matches
	Ambiguous []DuplicateGroup // multi-match names skipped by policy
}

// BuildNameIndex groups enumerated assets by bare filename. Match
// order inside each group follows the scanner's lexicographic
// ordering, so resolution is deterministic.
func BuildNameIndex(assets []*ImageAsset) map[string][]string {
	index := make(map[string][]string)
	for _, a := range assets {
		name := a.Name()
		index[name] = append(index[name], a.CanonicalPath)
	}
	for name := range index {
		sort.Strings(index[name])
	}
	return index
}

// PlanCollection resolves requested names against the index and stages
// copies into destDir. A name with zero matches is recorded as
// missing, never silently dropped. The planner only stages; it never
// deletes or moves sources.
func PlanCollection(index map[string][]string, names []string, policy DuplicatePolicy, destDir string) (*CollectionPlan, error) {
	if policy != DuplicateFirst && policy != DuplicateAll && policy != DuplicateSkip {
		return nil, fmt.Errorf("invalid duplicate policy: %d", policy)
	}

	plan := &CollectionPlan{}
	taken := make(map[string]bool) // destination names already staged

	for _, name := range names {
		matches := index[name]
		switch {
		case len(matches) == 0:
			plan.Missing = append(plan.Missing, name)

		case len(matches) == 1:
			plan.stage(matches[0], destDir, name, taken)

		default:
			switch policy {
			case DuplicateFirst:
				plan.stage(matches[0], destDir, name, taken)
			case DuplicateAll:
				for _, m := range matches {
					plan.stage(m, destDir, name, taken)
				}
			case DuplicateSkip:
				plan.Ambiguous = append(plan.Ambiguous, DuplicateGroup{
					Name:    name,
					Matches: append([]string(nil), matches...),
				})
			}
		}
	}

	return plan, nil
}

// stage appends an action, suffixing the destination name when it
// collides with one already staged: name.jpg, name_1.jpg, name_2.jpg.
func (p *CollectionPlan) stage(src, destDir, name string, taken map[string]bool) {
	candidate := name
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 1; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d%s", base, n, ext)
	}
	taken[candidate] = true
	p.Actions = append(p.Actions, CopyAction{Src: src, Dst: path.Join(destDir, candidate)})
}
