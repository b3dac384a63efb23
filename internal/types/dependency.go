package types

import (
	"encoding/json"
	"fmt"
)

// DependencyTypeTag identifies one arm of the DependencyType sum type.
type DependencyTypeTag string

const (
	DepTypeTagBlocks    DependencyTypeTag = "blocks"
	DepTypeTagRelatesTo DependencyTypeTag = "relates_to"
	DepTypeTagParentOf  DependencyTypeTag = "parent_of"
	DepTypeTagDuplicate DependencyTypeTag = "duplicate"
	DepTypeTagCustom    DependencyTypeTag = "custom"
)

type DependencyType struct {
	Tag    DependencyTypeTag
	Custom string
}

var (
	DepTypeBlocks    = DependencyType{Tag: DepTypeTagBlocks}
	DepTypeRelatesTo = DependencyType{Tag: DepTypeTagRelatesTo}
	DepTypeParentOf  = DependencyType{Tag: DepTypeTagParentOf}
	DepTypeDuplicate = DependencyType{Tag: DepTypeTagDuplicate}
)

func CustomDependencyType(name string) DependencyType {
	return DependencyType{Tag: DepTypeTagCustom, Custom: name}
}

func (d DependencyType) Equal(other DependencyType) bool {
	if d.Tag != other.Tag {
		return false
	}
	if d.Tag == DepTypeTagCustom {
		return d.Custom == other.Custom
	}
	return true
}

func (d DependencyType) IsValid() bool {
	if d.Tag == DepTypeTagCustom {
		return d.Custom != ""
	}
	switch d.Tag {
	case DepTypeTagBlocks, DepTypeTagRelatesTo, DepTypeTagParentOf, DepTypeTagDuplicate:
		return true
	default:
		return false
	}
}

func (d DependencyType) String() string {
	if d.Tag == DepTypeTagCustom {
		return d.Custom
	}
	return string(d.Tag)
}

type customDepTypeWire struct {
	Custom string `json:"custom"`
}

func (d DependencyType) MarshalJSON() ([]byte, error) {
	if d.Tag == DepTypeTagCustom {
		return json.Marshal(customDepTypeWire{Custom: d.Custom})
	}
	return json.Marshal(string(d.Tag))
}

func (d *DependencyType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*d = DependencyType{Tag: DependencyTypeTag(name)}
		if !d.IsValid() {
			return fmt.Errorf("invalid dependency type %q", name)
		}
		return nil
	}
	var wire customDepTypeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("invalid dependency type: %w", err)
	}
	if wire.Custom == "" {
		return fmt.Errorf("invalid dependency type: empty custom name")
	}
	*d = CustomDependencyType(wire.Custom)
	return nil
}

// Dependency links an issue to another it depends on. The triple
// (IssueID, DependsOnID, Type) is unique within a single issue's
// dependency list.
type Dependency struct {
	IssueID     string         `json:"issue_id"`
	DependsOnID string         `json:"depends_on_id"`
	Type        DependencyType `json:"dep_type"`
	CreatedAt   int64          `json:"created_at"`
	CreatedBy   string         `json:"created_by,omitempty"`
	Metadata    string         `json:"metadata,omitempty"`
	ThreadID    string         `json:"thread_id,omitempty"`
}

// SameKey reports whether two dependencies share the uniqueness triple.
func (d Dependency) SameKey(other Dependency) bool {
	return d.IssueID == other.IssueID && d.DependsOnID == other.DependsOnID && d.Type.Equal(other.Type)
}

func (d Dependency) Clone() Dependency {
	return d
}
