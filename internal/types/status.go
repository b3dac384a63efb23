package types

import (
	"encoding/json"
	"fmt"
)

// StatusTag identifies one arm of the Status sum type.
type StatusTag string

const (
	StatusTagOpen       StatusTag = "open"
	StatusTagInProgress StatusTag = "in_progress"
	StatusTagBlocked    StatusTag = "blocked"
	StatusTagDeferred   StatusTag = "deferred"
	StatusTagClosed     StatusTag = "closed"
	StatusTagTombstone  StatusTag = "tombstone"
	StatusTagPinned     StatusTag = "pinned"
	StatusTagCustom     StatusTag = "custom"
)

// Status is a closed-set sum type with one open Custom(string) arm.
// Equality is (tag, payload): two Status values are equal only if their
// tags match and, for the custom arm, their carried names match too.
type Status struct {
	Tag    StatusTag
	Custom string
}

var (
	StatusOpen       = Status{Tag: StatusTagOpen}
	StatusInProgress = Status{Tag: StatusTagInProgress}
	StatusBlocked    = Status{Tag: StatusTagBlocked}
	StatusDeferred   = Status{Tag: StatusTagDeferred}
	StatusClosed     = Status{Tag: StatusTagClosed}
	StatusTombstone  = Status{Tag: StatusTagTombstone}
	StatusPinned     = Status{Tag: StatusTagPinned}
)

// BuiltinStatuses lists every known non-custom status, tombstone excluded
// since it is never a creation-time or listing default.
var BuiltinStatuses = []Status{
	StatusOpen, StatusInProgress, StatusBlocked, StatusDeferred, StatusClosed, StatusPinned,
}

// CustomStatus builds the open Custom(string) arm carrying name.
func CustomStatus(name string) Status {
	return Status{Tag: StatusTagCustom, Custom: name}
}

// Equal implements the (tag, payload) equality required by the data model.
func (s Status) Equal(other Status) bool {
	if s.Tag != other.Tag {
		return false
	}
	if s.Tag == StatusTagCustom {
		return s.Custom == other.Custom
	}
	return true
}

func (s Status) IsValid() bool {
	if s.Tag == StatusTagCustom {
		return s.Custom != ""
	}
	switch s.Tag {
	case StatusTagOpen, StatusTagInProgress, StatusTagBlocked, StatusTagDeferred,
		StatusTagClosed, StatusTagTombstone, StatusTagPinned:
		return true
	default:
		return false
	}
}

// IsTombstone reports whether this status is the soft-delete marker.
func (s Status) IsTombstone() bool {
	return s.Tag == StatusTagTombstone
}

func (s Status) String() string {
	if s.Tag == StatusTagCustom {
		return s.Custom
	}
	return string(s.Tag)
}

type customStatusWire struct {
	Custom string `json:"custom"`
}

// MarshalJSON writes known variants as their bare name ("open") and the
// custom arm as {"custom":"<name>"}.
func (s Status) MarshalJSON() ([]byte, error) {
	if s.Tag == StatusTagCustom {
		return json.Marshal(customStatusWire{Custom: s.Custom})
	}
	return json.Marshal(string(s.Tag))
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = Status{Tag: StatusTag(name)}
		if !s.IsValid() {
			return fmt.Errorf("invalid status %q", name)
		}
		return nil
	}
	var wire customStatusWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("invalid status: %w", err)
	}
	if wire.Custom == "" {
		return fmt.Errorf("invalid status: empty custom name")
	}
	*s = CustomStatus(wire.Custom)
	return nil
}
