package catalog

import (
	"fmt"
)

// IssueKind classifies an audit finding.
type IssueKind string

const (
	// IssueMissingIdentity marks an option with neither `id` nor `value`.
	IssueMissingIdentity IssueKind = "missing_identity"
	// IssueDuplicateID marks an option shadowed by an earlier one.
	IssueDuplicateID IssueKind = "duplicate_id"
	// IssueEmptyOptions marks a select without options or list.
	IssueEmptyOptions IssueKind = "empty_options"
)

// Issue is a select option that lookups can never reach.
type Issue struct {
	Property string    `json:"property"`
	Index    int       `json:"index"`
	OptionID any       `json:"option_id,omitempty"`
	Kind     IssueKind `json:"kind"`
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueMissingIdentity:
		return fmt.Sprintf("%s: option %d has no id or value", i.Property, i.Index)
	case IssueDuplicateID:
		return fmt.Sprintf("%s: option %d duplicates id %v", i.Property, i.Index, i.OptionID)
	case IssueEmptyOptions:
		return fmt.Sprintf("%s: select has no options", i.Property)
	default:
		return fmt.Sprintf("%s: %s", i.Property, i.Kind)
	}
}

// Audit reports select options that lookups can never return: options
// without an identity and options whose id already appears earlier.
func (c *Catalog) Audit() []Issue {
	var issues []Issue
	for _, def := range c.Definitions() {
		if !def.IsSelect() {
			continue
		}
		options := def.SelectOptions()
		if len(options) == 0 {
			issues = append(issues, Issue{Property: def.ID, Index: -1, Kind: IssueEmptyOptions})
			continue
		}
		for i, option := range options {
			id, ok := option.Identity()
			if !ok {
				issues = append(issues, Issue{Property: def.ID, Index: i, Kind: IssueMissingIdentity})
				continue
			}
			for _, earlier := range options[:i] {
				if earlier.Matches(id) {
					issues = append(issues, Issue{Property: def.ID, Index: i, OptionID: id, Kind: IssueDuplicateID})
					break
				}
			}
		}
	}
	return issues
}
