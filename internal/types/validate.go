package types

import "fmt"

// Validate checks the per-issue invariants that do not depend on other
// issues in the store (uniqueness of id, of labels against the rest of
// the store, etc. are the IssueStore's responsibility).
func (i *Issue) Validate() error {
	if i.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(i.Title) > 500 {
		return fmt.Errorf("title must be 500 characters or less")
	}
	if !i.Priority.IsValid() {
		return fmt.Errorf("priority must be between 0 and 4")
	}
	if !i.Status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if !i.IssueType.IsValid() {
		return fmt.Errorf("invalid issue type")
	}
	if i.EstimatedMinutes != nil && *i.EstimatedMinutes < 0 {
		return fmt.Errorf("estimated_minutes cannot be negative")
	}
	if i.UpdatedAt < i.CreatedAt {
		return fmt.Errorf("updated_at must not precede created_at")
	}
	if i.Status.Tag == StatusTagClosed && i.ClosedAt == nil {
		return fmt.Errorf("closed issues must have closed_at timestamp")
	}
	if i.Status.Tag != StatusTagClosed && i.ClosedAt != nil {
		return fmt.Errorf("non-closed issues cannot have closed_at timestamp")
	}
	if seen := make(map[string]struct{}, len(i.Labels)); true {
		for _, l := range i.Labels {
			if _, dup := seen[l]; dup {
				return fmt.Errorf("duplicate label %q", l)
			}
			seen[l] = struct{}{}
		}
	}
	if seen := make(map[string]struct{}, len(i.Dependencies)); true {
		for _, d := range i.Dependencies {
			key := d.DependsOnID + "\x00" + d.Type.String()
			if _, dup := seen[key]; dup {
				return fmt.Errorf("duplicate dependency on %q of type %q", d.DependsOnID, d.Type)
			}
			seen[key] = struct{}{}
		}
	}
	return nil
}
